package repository

import (
	"context"
	"fmt"
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Room, error)
	FindAll(ctx context.Context) ([]*entity.Room, error)

	// FindAvailableByType returns available rooms of the given type with no
	// non-cancelled booking at the exact (date, time) slot, cheapest first.
	FindAvailableByType(ctx context.Context, roomType string, date time.Time, slot string) ([]*entity.Room, error)
}

type roomRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRoomRepository(db database.Querier, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

func (r *roomRepository) FindByID(ctx context.Context, id string) (*entity.Room, error) {
	query := `
		SELECT id, room_type, price, capacity, status
		FROM rooms
		WHERE id = $1
	`

	var room entity.Room
	err := r.db.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.RoomType,
		&room.Price,
		&room.Capacity,
		&room.Status,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id, err)
	}

	return &room, nil
}

func (r *roomRepository) FindAll(ctx context.Context) ([]*entity.Room, error) {
	query := `
		SELECT id, room_type, price, capacity, status
		FROM rooms
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list rooms", zap.Error(err))
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func (r *roomRepository) FindAvailableByType(ctx context.Context, roomType string, date time.Time, slot string) ([]*entity.Room, error) {
	query := `
		SELECT r.id, r.room_type, r.price, r.capacity, r.status
		FROM rooms r
		WHERE r.room_type = $1
		  AND r.status = 'available'
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id
			  AND b.booked_date = $2
			  AND b.booked_time = $3
			  AND b.payment_status <> 'cancelled'
		  )
		ORDER BY r.price ASC
	`

	rows, err := r.db.Query(ctx, query, roomType, date, slot)
	if err != nil {
		r.log.Error("Failed to search available rooms",
			zap.Error(err),
			zap.String("room_type", roomType),
			zap.Time("date", date),
			zap.String("time", slot),
		)
		return nil, fmt.Errorf("search available rooms of type %s: %w", roomType, err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func scanRooms(rows pgx.Rows) ([]*entity.Room, error) {
	var rooms []*entity.Room
	for rows.Next() {
		var room entity.Room
		err := rows.Scan(
			&room.ID,
			&room.RoomType,
			&room.Price,
			&room.Capacity,
			&room.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, rows.Err()
}
