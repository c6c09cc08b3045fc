package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/internal/data/repository"
	"sports-booking/internal/dto/request"
	"sports-booking/internal/dto/response"
	"sports-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest, actor entity.ActorContext) (*response.BookingResult, error)
	RecordPayment(ctx context.Context, bookingID string, actor entity.ActorContext) (*response.BookingResult, error)
	CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest, actor entity.ActorContext) (*response.BookingResult, error)
	SearchAvailableRooms(ctx context.Context, req *request.SearchRoomsRequest) (*response.RoomSearchResult, error)
	ListBookings(ctx context.Context) ([]*response.BookingListItem, error)
}

type bookingService struct {
	store  Store
	policy cancellationPolicy
	log    *zap.Logger
}

func NewBookingService(store Store, policy cancellationPolicy, log *zap.Logger) BookingService {
	return &bookingService{
		store:  store,
		policy: policy,
		log:    log.With(zap.String("service", "booking")),
	}
}

func failure(outcome Outcome, message string) *response.BookingResult {
	return &response.BookingResult{Status: string(outcome), Message: message}
}

// CreateBooking reserves a slot, charges the member's balance and appends the
// INSERT audit record, all in one transaction. Precondition checks run in the
// contract order: room, member, slot conflict, date/time.
func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest, actor entity.ActorContext) (*response.BookingResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookedDate, err := utils.ParseSlotDate(req.Date)
	if err != nil {
		return failure(OutcomeInvalidDate, "invalid booking date"), nil
	}
	slot, err := utils.ParseSlotTime(req.Time)
	if err != nil {
		return failure(OutcomeInvalidDate, "invalid booking time"), nil
	}

	var res *response.BookingResult
	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		room, err := repo.Room.FindByID(ctx, req.RoomID)
		if err != nil {
			return err
		}
		if room == nil || room.Status != entity.RoomStatusAvailable {
			res = failure(OutcomeRoomNotFound, fmt.Sprintf("room %s not found or not available", req.RoomID))
			return errRolledBack
		}

		member, err := repo.Member.FindByID(ctx, req.MemberID)
		if err != nil {
			return err
		}
		if member == nil || member.Status != entity.MemberStatusActive {
			res = failure(OutcomeMemberNotFound, fmt.Sprintf("member %s not found or not active", req.MemberID))
			return errRolledBack
		}

		// Slot lock comes before the member-balance lock, always.
		taken, err := repo.Booking.FindSlotForUpdate(ctx, room.ID, bookedDate, slot)
		if err != nil {
			return err
		}
		if taken != nil {
			res = failure(OutcomeConflict, fmt.Sprintf("room %s is already booked for %s %s", room.ID, req.Date, slot))
			return errRolledBack
		}

		if !s.policy.bookableDate(bookedDate) || !s.policy.withinOperatingWindow(slot) {
			res = failure(OutcomeInvalidDate, "booking must be today or later, within operating hours")
			return errRolledBack
		}

		booking := &entity.Booking{
			ID:                uuid.New(),
			RoomID:            room.ID,
			MemberID:          member.ID,
			BookedDate:        bookedDate,
			BookedTime:        slot,
			PaymentStatus:     entity.PaymentStatusUnpaid,
			TotalAmount:       room.Price,
			DatetimeOfBooking: time.Now(),
		}

		if err := repo.Booking.Create(ctx, booking); err != nil {
			// A concurrent create can win the slot between our check and the
			// unique index; exactly one of the two gets CONFLICT.
			if errors.Is(err, repository.ErrSlotTaken) {
				res = failure(OutcomeConflict, fmt.Sprintf("room %s is already booked for %s %s", room.ID, req.Date, slot))
				return errRolledBack
			}
			return err
		}

		locked, err := repo.Member.FindByIDForUpdate(ctx, member.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("member %s disappeared during booking", member.ID)
		}

		newDue := locked.PaymentDue.Add(booking.TotalAmount)
		if err := repo.Member.UpdatePaymentDue(ctx, locked.ID, newDue); err != nil {
			return err
		}

		newSnap, err := bookingSnapshot(booking, newDue)
		if err != nil {
			return err
		}
		if err := repo.Audit.Append(ctx, newAuditRecord(entity.AuditActionInsert, booking.ID, nil, newSnap, actor)); err != nil {
			return err
		}

		res = &response.BookingResult{
			Status:  string(OutcomeSuccess),
			Message: "room booked successfully",
			Booking: response.BookingToResponse(booking),
		}
		return nil
	})

	if err != nil && !errors.Is(err, errRolledBack) {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("room_id", req.RoomID),
			zap.String("member_id", req.MemberID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if res.Status == string(OutcomeSuccess) {
		s.log.Info("Booking created",
			zap.String("booking_id", res.Booking.ID),
			zap.String("room_id", req.RoomID),
			zap.String("member_id", req.MemberID),
			zap.String("date", req.Date),
			zap.String("time", req.Time),
		)
	}

	return res, nil
}

// RecordPayment flips an unpaid booking to paid and settles the member's
// balance. The decrement is clamped at zero; debt never goes negative.
func (s *bookingService) RecordPayment(ctx context.Context, bookingID string, actor entity.ActorContext) (*response.BookingResult, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return failure(OutcomeNotFound, fmt.Sprintf("booking %s not found", bookingID)), nil
	}

	var res *response.BookingResult
	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		booking, err := repo.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			res = failure(OutcomeNotFound, fmt.Sprintf("booking %s not found", bookingID))
			return errRolledBack
		}

		switch booking.PaymentStatus {
		case entity.PaymentStatusPaid:
			res = failure(OutcomeAlreadyPaid, "booking is already paid")
			return errRolledBack
		case entity.PaymentStatusCancelled:
			res = failure(OutcomeCancelled, "cannot pay a cancelled booking")
			return errRolledBack
		}

		member, err := repo.Member.FindByIDForUpdate(ctx, booking.MemberID)
		if err != nil {
			return err
		}
		if member == nil {
			return fmt.Errorf("member %s not found for booking %s", booking.MemberID, bookingID)
		}

		oldSnap, err := bookingSnapshot(booking, member.PaymentDue)
		if err != nil {
			return err
		}

		if err := repo.Booking.MarkPaid(ctx, booking.ID); err != nil {
			return err
		}
		booking.PaymentStatus = entity.PaymentStatusPaid

		newDue := member.PaymentDue.Sub(booking.TotalAmount)
		if newDue.IsNegative() {
			newDue = decimal.Zero
		}
		if err := repo.Member.UpdatePaymentDue(ctx, member.ID, newDue); err != nil {
			return err
		}

		newSnap, err := bookingSnapshot(booking, newDue)
		if err != nil {
			return err
		}
		if err := repo.Audit.Append(ctx, newAuditRecord(entity.AuditActionUpdate, booking.ID, oldSnap, newSnap, actor)); err != nil {
			return err
		}

		res = &response.BookingResult{
			Status:  string(OutcomeSuccess),
			Message: "payment recorded",
			Booking: response.BookingToResponse(booking),
		}
		return nil
	})

	if err != nil && !errors.Is(err, errRolledBack) {
		s.log.Error("Failed to record payment",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("record payment: %w", err)
	}

	if res.Status == string(OutcomeSuccess) {
		s.log.Info("Payment recorded", zap.String("booking_id", bookingID))
	}

	return res, nil
}

// CancelBooking waives the booking's charge, evaluates the trailing
// cancellation run with the cancellation already recorded, fines repeat
// offenders, and appends the CANCEL audit record. One transaction, so a
// concurrent cancellation on the same member cannot miscount the run.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest, actor entity.ActorContext) (*response.BookingResult, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return failure(OutcomeNotFound, fmt.Sprintf("booking %s not found", bookingID)), nil
	}

	var reason *string
	if req != nil {
		reason = req.Reason
	}

	var res *response.BookingResult
	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		booking, err := repo.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			res = failure(OutcomeNotFound, fmt.Sprintf("booking %s not found", bookingID))
			return errRolledBack
		}

		// Deadline is strictly the day before the booked date.
		if !s.policy.cancellable(booking.BookedDate) {
			res = failure(OutcomeTooLate, "cancellation deadline has passed")
			return errRolledBack
		}

		if booking.Final() {
			res = failure(OutcomeAlreadyFinal, fmt.Sprintf("booking is already %s", booking.PaymentStatus))
			return errRolledBack
		}

		member, err := repo.Member.FindByIDForUpdate(ctx, booking.MemberID)
		if err != nil {
			return err
		}
		if member == nil {
			return fmt.Errorf("member %s not found for booking %s", booking.MemberID, bookingID)
		}

		oldSnap, err := bookingSnapshot(booking, member.PaymentDue)
		if err != nil {
			return err
		}

		cancelledAt := time.Now()
		if err := repo.Booking.MarkCancelled(ctx, booking.ID, reason, cancelledAt); err != nil {
			return err
		}
		booking.PaymentStatus = entity.PaymentStatusCancelled
		booking.CancellationReason = reason
		booking.CancelledAt = &cancelledAt

		// The cancelled booking's charge is waived.
		newDue := member.PaymentDue.Sub(booking.TotalAmount)
		if newDue.IsNegative() {
			newDue = decimal.Zero
		}

		// The run is computed after the status flip, so this cancellation
		// counts toward it.
		history, err := repo.Booking.FindByMemberNewestFirst(ctx, member.ID)
		if err != nil {
			return err
		}
		run := trailingRun(history)

		fineApplied := s.policy.fineApplies(run)
		if fineApplied {
			newDue = newDue.Add(s.policy.fine)
		}

		if err := repo.Member.UpdatePaymentDue(ctx, member.ID, newDue); err != nil {
			return err
		}

		newSnap, err := bookingSnapshot(booking, newDue)
		if err != nil {
			return err
		}
		if err := repo.Audit.Append(ctx, newAuditRecord(entity.AuditActionCancel, booking.ID, oldSnap, newSnap, actor)); err != nil {
			return err
		}

		message := "booking cancelled"
		if fineApplied {
			message = fmt.Sprintf("booking cancelled; %s fine applied for %d consecutive cancellations",
				s.policy.fine.StringFixed(2), run)
		}

		res = &response.BookingResult{
			Status:      string(OutcomeSuccess),
			Message:     message,
			FineApplied: fineApplied,
			Booking:     response.BookingToResponse(booking),
		}
		return nil
	})

	if err != nil && !errors.Is(err, errRolledBack) {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	if res.Status == string(OutcomeSuccess) {
		s.log.Info("Booking cancelled",
			zap.String("booking_id", bookingID),
			zap.Bool("fine_applied", res.FineApplied),
		)
	}

	return res, nil
}

// SearchAvailableRooms is read-only: available rooms of the requested type
// with a free slot at (date, time), cheapest first.
func (s *bookingService) SearchAvailableRooms(ctx context.Context, req *request.SearchRoomsRequest) (*response.RoomSearchResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Search rooms validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookedDate, err := utils.ParseSlotDate(req.Date)
	if err != nil {
		return &response.RoomSearchResult{Status: string(OutcomeInvalidDate), Message: "invalid booking date"}, nil
	}
	slot, err := utils.ParseSlotTime(req.Time)
	if err != nil {
		return &response.RoomSearchResult{Status: string(OutcomeInvalidDate), Message: "invalid booking time"}, nil
	}

	if !s.policy.bookableDate(bookedDate) {
		return &response.RoomSearchResult{Status: string(OutcomeInvalidDate), Message: "cannot search past dates"}, nil
	}

	var rooms []*entity.Room
	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		rooms, err = repo.Room.FindAvailableByType(ctx, req.RoomType, bookedDate, slot)
		return err
	})
	if err != nil {
		s.log.Error("Failed to search rooms",
			zap.Error(err),
			zap.String("room_type", req.RoomType),
		)
		return nil, fmt.Errorf("search rooms: %w", err)
	}

	result := &response.RoomSearchResult{
		Status:  string(OutcomeSuccess),
		Message: fmt.Sprintf("%d rooms available", len(rooms)),
		Rooms:   make([]*response.RoomResponse, 0, len(rooms)),
	}
	for _, room := range rooms {
		result.Rooms = append(result.Rooms, response.RoomToResponse(room))
	}

	return result, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]*response.BookingListItem, error) {
	var bookings []*entity.Booking
	var rooms []*entity.Room

	err := s.store.WithTx(ctx, func(repo *repository.Repository) error {
		var err error
		if bookings, err = repo.Booking.FindAll(ctx); err != nil {
			return err
		}
		rooms, err = repo.Room.FindAll(ctx)
		return err
	})
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	roomTypes := make(map[string]string, len(rooms))
	for _, room := range rooms {
		roomTypes[room.ID] = room.RoomType
	}

	items := make([]*response.BookingListItem, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, &response.BookingListItem{
			BookingID:         b.ID.String(),
			RoomID:            b.RoomID,
			RoomType:          roomTypes[b.RoomID],
			BookedDate:        b.BookedDate.Format("2006-01-02"),
			BookedTime:        b.BookedTime,
			DatetimeOfBooking: b.DatetimeOfBooking,
			MemberID:          b.MemberID,
			PaymentStatus:     b.PaymentStatus,
		})
	}

	return items, nil
}
