package entity

import (
	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomStatusAvailable    RoomStatus = "available"
	RoomStatusMaintenance  RoomStatus = "maintenance"
	RoomStatusOutOfService RoomStatus = "out_of_service"
)

// Room is read-only from the booking engine's point of view; the catalog is
// maintained by an administrative path. Price is copied into a booking at
// creation time, so later price changes never affect existing bookings.
type Room struct {
	ID       string          `db:"id"`
	RoomType string          `db:"room_type"`
	Price    decimal.Decimal `db:"price"`
	Capacity int             `db:"capacity"`
	Status   RoomStatus      `db:"status"`
}
