package usecase

import (
	"testing"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func statusHistory(statuses ...entity.PaymentStatus) []*entity.Booking {
	bookings := make([]*entity.Booking, 0, len(statuses))
	for _, st := range statuses {
		bookings = append(bookings, &entity.Booking{PaymentStatus: st})
	}
	return bookings
}

func TestTrailingRun(t *testing.T) {
	cancelled := entity.PaymentStatusCancelled
	paid := entity.PaymentStatusPaid
	unpaid := entity.PaymentStatusUnpaid

	tests := []struct {
		name    string
		history []*entity.Booking
		want    int
	}{
		{"empty history", nil, 0},
		{"single cancellation", statusHistory(cancelled), 1},
		{"run of three", statusHistory(cancelled, cancelled, cancelled), 3},
		{"paid on top breaks the run", statusHistory(paid, cancelled, cancelled), 0},
		{"run stops at first non-cancelled", statusHistory(cancelled, cancelled, unpaid, cancelled), 2},
		{"older cancellations beyond the break do not count", statusHistory(cancelled, paid, cancelled, cancelled), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trailingRun(tt.history))
		})
	}
}

func TestFineApplies(t *testing.T) {
	policy := newCancellationPolicy(testConfig().Booking)

	assert.False(t, policy.fineApplies(0))
	assert.False(t, policy.fineApplies(1))
	assert.False(t, policy.fineApplies(2))
	assert.True(t, policy.fineApplies(3))
	assert.True(t, policy.fineApplies(7))
}

func TestWithinOperatingWindow(t *testing.T) {
	policy := newCancellationPolicy(testConfig().Booking)

	tests := []struct {
		slot string
		want bool
	}{
		{"06:00", true},
		{"10:30", true},
		{"22:00", true},
		{"05:59", false},
		{"22:01", false},
		{"23:00", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, policy.withinOperatingWindow(tt.slot), "slot %s", tt.slot)
	}
}

func TestBookableAndCancellableDates(t *testing.T) {
	policy := newCancellationPolicy(testConfig().Booking)

	today := utils.Today()
	assert.True(t, policy.bookableDate(today))
	assert.True(t, policy.bookableDate(today.AddDate(0, 0, 1)))
	assert.False(t, policy.bookableDate(today.AddDate(0, 0, -1)))

	// Cancellation deadline is strictly the day before.
	assert.True(t, policy.cancellable(today.AddDate(0, 0, 1)))
	assert.False(t, policy.cancellable(today))
	assert.False(t, policy.cancellable(today.AddDate(0, 0, -1)))
}
