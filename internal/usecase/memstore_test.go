package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory Store used by the service tests. WithTx serializes
// callers behind a mutex and restores a pre-transaction snapshot on error, so
// the services see the same atomicity and isolation guarantees the real
// transaction layer provides.
type memStore struct {
	mu sync.Mutex

	members  map[string]*entity.Member
	rooms    map[string]*entity.Room
	bookings map[uuid.UUID]*entity.Booking
	pending  map[string]*entity.PendingTermination
	audits   []*entity.AuditRecord
}

func newMemStore() *memStore {
	return &memStore{
		members:  make(map[string]*entity.Member),
		rooms:    make(map[string]*entity.Room),
		bookings: make(map[uuid.UUID]*entity.Booking),
		pending:  make(map[string]*entity.PendingTermination),
	}
}

func (s *memStore) WithTx(ctx context.Context, fn func(*repository.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	repo := &repository.Repository{
		Member:             &memMemberRepo{s},
		Room:               &memRoomRepo{s},
		Booking:            &memBookingRepo{s},
		PendingTermination: &memPendingRepo{s},
		Audit:              &memAuditRepo{s},
	}

	if err := fn(repo); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	members  map[string]*entity.Member
	rooms    map[string]*entity.Room
	bookings map[uuid.UUID]*entity.Booking
	pending  map[string]*entity.PendingTermination
	audits   []*entity.AuditRecord
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		members:  make(map[string]*entity.Member, len(s.members)),
		rooms:    make(map[string]*entity.Room, len(s.rooms)),
		bookings: make(map[uuid.UUID]*entity.Booking, len(s.bookings)),
		pending:  make(map[string]*entity.PendingTermination, len(s.pending)),
		audits:   append([]*entity.AuditRecord(nil), s.audits...),
	}
	for id, m := range s.members {
		snap.members[id] = cloneMember(m)
	}
	for id, r := range s.rooms {
		snap.rooms[id] = cloneRoom(r)
	}
	for id, b := range s.bookings {
		snap.bookings[id] = cloneBooking(b)
	}
	for id, pt := range s.pending {
		snap.pending[id] = clonePending(pt)
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.members = snap.members
	s.rooms = snap.rooms
	s.bookings = snap.bookings
	s.pending = snap.pending
	s.audits = snap.audits
}

func cloneMember(m *entity.Member) *entity.Member {
	c := *m
	return &c
}

func cloneRoom(r *entity.Room) *entity.Room {
	c := *r
	return &c
}

func cloneBooking(b *entity.Booking) *entity.Booking {
	c := *b
	if b.CancellationReason != nil {
		reason := *b.CancellationReason
		c.CancellationReason = &reason
	}
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		c.CancelledAt = &at
	}
	return &c
}

func clonePending(pt *entity.PendingTermination) *entity.PendingTermination {
	c := *pt
	return &c
}

// sameSlot matches the partial unique index predicate columns.
func sameSlot(b *entity.Booking, roomID string, date time.Time, slot string) bool {
	return b.RoomID == roomID && b.BookedDate.Equal(date) && b.BookedTime == slot
}

func sortNewestFirst(bookings []*entity.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].DatetimeOfBooking.Equal(bookings[j].DatetimeOfBooking) {
			return bookings[i].DatetimeOfBooking.After(bookings[j].DatetimeOfBooking)
		}
		return bookings[i].ID.String() > bookings[j].ID.String()
	})
}

type memMemberRepo struct{ s *memStore }

func (r *memMemberRepo) Create(ctx context.Context, member *entity.Member) error {
	if _, ok := r.s.members[member.ID]; ok {
		return repository.ErrDuplicateMember
	}
	for _, m := range r.s.members {
		if m.Email == member.Email {
			return repository.ErrDuplicateMember
		}
	}
	r.s.members[member.ID] = cloneMember(member)
	return nil
}

func (r *memMemberRepo) FindByID(ctx context.Context, id string) (*entity.Member, error) {
	m, ok := r.s.members[id]
	if !ok {
		return nil, nil
	}
	return cloneMember(m), nil
}

func (r *memMemberRepo) FindByIDForUpdate(ctx context.Context, id string) (*entity.Member, error) {
	return r.FindByID(ctx, id)
}

func (r *memMemberRepo) FindAll(ctx context.Context) ([]*entity.Member, error) {
	members := make([]*entity.Member, 0, len(r.s.members))
	for _, m := range r.s.members {
		members = append(members, cloneMember(m))
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].MemberSince.After(members[j].MemberSince)
	})
	return members, nil
}

func (r *memMemberRepo) UpdatePaymentDue(ctx context.Context, id string, amount decimal.Decimal) error {
	if m, ok := r.s.members[id]; ok {
		m.PaymentDue = amount
	}
	return nil
}

func (r *memMemberRepo) UpdateEmail(ctx context.Context, id, email string) error {
	for otherID, m := range r.s.members {
		if otherID != id && m.Email == email {
			return repository.ErrDuplicateMember
		}
	}
	if m, ok := r.s.members[id]; ok {
		m.Email = email
	}
	return nil
}

func (r *memMemberRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m, ok := r.s.members[id]; ok {
		m.PasswordHash = passwordHash
	}
	return nil
}

func (r *memMemberRepo) Delete(ctx context.Context, id string) error {
	delete(r.s.members, id)
	return nil
}

type memRoomRepo struct{ s *memStore }

func (r *memRoomRepo) FindByID(ctx context.Context, id string) (*entity.Room, error) {
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	return cloneRoom(room), nil
}

func (r *memRoomRepo) FindAll(ctx context.Context) ([]*entity.Room, error) {
	rooms := make([]*entity.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		rooms = append(rooms, cloneRoom(room))
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (r *memRoomRepo) FindAvailableByType(ctx context.Context, roomType string, date time.Time, slot string) ([]*entity.Room, error) {
	var rooms []*entity.Room
	for _, room := range r.s.rooms {
		if room.RoomType != roomType || room.Status != entity.RoomStatusAvailable {
			continue
		}
		taken := false
		for _, b := range r.s.bookings {
			if sameSlot(b, room.ID, date, slot) && b.PaymentStatus != entity.PaymentStatusCancelled {
				taken = true
				break
			}
		}
		if !taken {
			rooms = append(rooms, cloneRoom(room))
		}
	}
	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].Price.Equal(rooms[j].Price) {
			return rooms[i].Price.LessThan(rooms[j].Price)
		}
		return rooms[i].ID < rooms[j].ID
	})
	return rooms, nil
}

type memBookingRepo struct{ s *memStore }

func (r *memBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	for _, b := range r.s.bookings {
		if sameSlot(b, booking.RoomID, booking.BookedDate, booking.BookedTime) &&
			b.PaymentStatus != entity.PaymentStatusCancelled {
			return repository.ErrSlotTaken
		}
	}
	r.s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return cloneBooking(b), nil
}

func (r *memBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *memBookingRepo) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	bookings := make([]*entity.Booking, 0, len(r.s.bookings))
	for _, b := range r.s.bookings {
		bookings = append(bookings, cloneBooking(b))
	}
	sortNewestFirst(bookings)
	return bookings, nil
}

func (r *memBookingRepo) FindSlotForUpdate(ctx context.Context, roomID string, date time.Time, slot string) (*entity.Booking, error) {
	for _, b := range r.s.bookings {
		if sameSlot(b, roomID, date, slot) && b.PaymentStatus != entity.PaymentStatusCancelled {
			return cloneBooking(b), nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) FindByMemberNewestFirst(ctx context.Context, memberID string) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for _, b := range r.s.bookings {
		if b.MemberID == memberID {
			bookings = append(bookings, cloneBooking(b))
		}
	}
	sortNewestFirst(bookings)
	return bookings, nil
}

func (r *memBookingRepo) FindByMemberForUpdate(ctx context.Context, memberID string) ([]*entity.Booking, error) {
	return r.FindByMemberNewestFirst(ctx, memberID)
}

func (r *memBookingRepo) MarkPaid(ctx context.Context, id uuid.UUID) error {
	if b, ok := r.s.bookings[id]; ok {
		b.PaymentStatus = entity.PaymentStatusPaid
	}
	return nil
}

func (r *memBookingRepo) MarkCancelled(ctx context.Context, id uuid.UUID, reason *string, cancelledAt time.Time) error {
	if b, ok := r.s.bookings[id]; ok {
		b.PaymentStatus = entity.PaymentStatusCancelled
		b.CancellationReason = reason
		b.CancelledAt = &cancelledAt
	}
	return nil
}

func (r *memBookingRepo) DeleteByMember(ctx context.Context, memberID string) (int64, error) {
	var deleted int64
	for id, b := range r.s.bookings {
		if b.MemberID == memberID {
			delete(r.s.bookings, id)
			deleted++
		}
	}
	return deleted, nil
}

type memPendingRepo struct{ s *memStore }

func (r *memPendingRepo) Create(ctx context.Context, pt *entity.PendingTermination) error {
	r.s.pending[pt.ID] = clonePending(pt)
	return nil
}

func (r *memPendingRepo) FindByID(ctx context.Context, id string) (*entity.PendingTermination, error) {
	pt, ok := r.s.pending[id]
	if !ok {
		return nil, nil
	}
	return clonePending(pt), nil
}

func (r *memPendingRepo) FindAll(ctx context.Context) ([]*entity.PendingTermination, error) {
	pts := make([]*entity.PendingTermination, 0, len(r.s.pending))
	for _, pt := range r.s.pending {
		pts = append(pts, clonePending(pt))
	}
	sort.Slice(pts, func(i, j int) bool {
		return pts[i].RequestDate.After(pts[j].RequestDate)
	})
	return pts, nil
}

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Append(ctx context.Context, record *entity.AuditRecord) error {
	c := *record
	r.s.audits = append(r.s.audits, &c)
	return nil
}

func (r *memAuditRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.AuditRecord, error) {
	var records []*entity.AuditRecord
	for _, rec := range r.s.audits {
		if rec.BookingID == bookingID {
			c := *rec
			records = append(records, &c)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ChangedAt.Before(records[j].ChangedAt)
	})
	return records, nil
}
