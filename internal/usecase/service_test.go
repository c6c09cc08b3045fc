package usecase

import (
	"testing"
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var testActor = entity.ActorContext{
	ActorID:    "front-desk",
	SourceAddr: "127.0.0.1",
	UserAgent:  "go-test",
}

func testConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			OpenTime:                 "06:00",
			CloseTime:                "22:00",
			CancellationFine:         decimal.RequireFromString("10.00"),
			CancellationRunThreshold: 3,
		},
	}
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewService(store, testConfig(), zap.NewNop()), store
}

func seedRoom(store *memStore, id, roomType, price string, status entity.RoomStatus) {
	store.rooms[id] = &entity.Room{
		ID:       id,
		RoomType: roomType,
		Price:    decimal.RequireFromString(price),
		Capacity: 4,
		Status:   status,
	}
}

func seedMember(store *memStore, id, email, due string) {
	store.members[id] = &entity.Member{
		ID:          id,
		Email:       email,
		PaymentDue:  decimal.RequireFromString(due),
		Status:      entity.MemberStatusActive,
		MemberSince: time.Now().Add(-24 * time.Hour),
	}
}

func seedBooking(store *memStore, roomID, memberID string, date time.Time, slot string,
	status entity.PaymentStatus, amount string, createdAt time.Time) uuid.UUID {

	id := uuid.New()
	store.bookings[id] = &entity.Booking{
		ID:                id,
		RoomID:            roomID,
		MemberID:          memberID,
		BookedDate:        date,
		BookedTime:        slot,
		PaymentStatus:     status,
		TotalAmount:       decimal.RequireFromString(amount),
		DatetimeOfBooking: createdAt,
	}
	return id
}

func futureDate(days int) time.Time {
	return utils.Today().AddDate(0, 0, days)
}

func dateStr(t time.Time) string {
	return t.Format("2006-01-02")
}
