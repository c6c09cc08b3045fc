package usecase

import (
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/utils"

	"github.com/shopspring/decimal"
)

// cancellationPolicy decides whether a cancellation draws a fine and whether
// a slot falls inside the facility's operating window.
type cancellationPolicy struct {
	openTime     string
	closeTime    string
	fine         decimal.Decimal
	runThreshold int
}

func newCancellationPolicy(cfg utils.BookingConfig) cancellationPolicy {
	return cancellationPolicy{
		openTime:     cfg.OpenTime,
		closeTime:    cfg.CloseTime,
		fine:         cfg.CancellationFine,
		runThreshold: cfg.CancellationRunThreshold,
	}
}

// trailingRun counts the member's consecutive cancellations scanning newest
// first, stopping at the first booking that is not cancelled. The caller must
// pass the history as seen after the current cancellation was recorded, so
// the current one counts toward its own run.
func trailingRun(bookings []*entity.Booking) int {
	run := 0
	for _, b := range bookings {
		if b.PaymentStatus != entity.PaymentStatusCancelled {
			break
		}
		run++
	}
	return run
}

// fineApplies: the fine is charged on the third-or-later consecutive
// cancellation, counting the one just recorded.
func (p cancellationPolicy) fineApplies(run int) bool {
	return run >= p.runThreshold
}

// withinOperatingWindow reports whether a normalized "HH:MM" slot falls in
// [open, close]. Lexicographic comparison is exact for that format.
func (p cancellationPolicy) withinOperatingWindow(slot string) bool {
	return slot >= p.openTime && slot <= p.closeTime
}

// bookableDate: bookings may not target past dates.
func (p cancellationPolicy) bookableDate(date time.Time) bool {
	return !date.Before(utils.Today())
}

// cancellable: the deadline is strictly the day before the booked date.
func (p cancellationPolicy) cancellable(bookedDate time.Time) bool {
	return utils.Today().Before(bookedDate)
}
