package usecase

import (
	"context"
	"testing"
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterMember(t *testing.T) {
	ctx := context.Background()

	t.Run("registers with a zero balance", func(t *testing.T) {
		svc, store := newTestService(t)

		res, err := svc.Member.Register(ctx, &request.RegisterMemberRequest{
			ID:       "alice",
			Password: "hunter2hunter2",
			Email:    "alice@example.com",
		})
		require.NoError(t, err)
		require.Equal(t, string(OutcomeSuccess), res.Status)
		require.NotNil(t, res.Member)
		assert.Equal(t, "0.00", res.Member.PaymentDue.StringFixed(2))

		stored := store.members["alice"]
		require.NotNil(t, stored)
		assert.Equal(t, entity.MemberStatusActive, stored.Status)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(stored.PasswordHash), []byte("hunter2hunter2")))
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		svc, store := newTestService(t)
		seedMember(store, "alice", "alice@example.com", "0.00")

		res, err := svc.Member.Register(ctx, &request.RegisterMemberRequest{
			ID:       "alice",
			Password: "hunter2hunter2",
			Email:    "other@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, string(OutcomeAlreadyExists), res.Status)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		svc, store := newTestService(t)
		seedMember(store, "alice", "alice@example.com", "0.00")

		res, err := svc.Member.Register(ctx, &request.RegisterMemberRequest{
			ID:       "alice2",
			Password: "hunter2hunter2",
			Email:    "alice@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, string(OutcomeAlreadyExists), res.Status)
	})
}

func TestUpdateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("email", func(t *testing.T) {
		svc, store := newTestService(t)
		seedMember(store, "alice", "alice@example.com", "0.00")

		res, err := svc.Member.UpdateEmail(ctx, "alice", &request.UpdateEmailRequest{
			Email: "new@example.com",
		})
		require.NoError(t, err)
		require.Equal(t, string(OutcomeSuccess), res.Status)
		assert.Equal(t, "new@example.com", store.members["alice"].Email)
	})

	t.Run("email taken by another member", func(t *testing.T) {
		svc, store := newTestService(t)
		seedMember(store, "alice", "alice@example.com", "0.00")
		seedMember(store, "bob", "bob@example.com", "0.00")

		res, err := svc.Member.UpdateEmail(ctx, "alice", &request.UpdateEmailRequest{
			Email: "bob@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, string(OutcomeAlreadyExists), res.Status)
		assert.Equal(t, "alice@example.com", store.members["alice"].Email)
	})

	t.Run("password", func(t *testing.T) {
		svc, store := newTestService(t)
		seedMember(store, "alice", "alice@example.com", "0.00")

		res, err := svc.Member.UpdatePassword(ctx, "alice", &request.UpdatePasswordRequest{
			Password: "correcthorse",
		})
		require.NoError(t, err)
		require.Equal(t, string(OutcomeSuccess), res.Status)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(store.members["alice"].PasswordHash), []byte("correcthorse")))
	})

	t.Run("unknown member", func(t *testing.T) {
		svc, _ := newTestService(t)

		res, err := svc.Member.UpdateEmail(ctx, "ghost", &request.UpdateEmailRequest{
			Email: "ghost@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, string(OutcomeNotFound), res.Status)
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("outstanding balance survives as a pending termination", func(t *testing.T) {
		svc, store := newTestService(t)
		seedMember(store, "alice", "alice@example.com", "25.00")
		b1 := seedBooking(store, "court-01", "alice", futureDate(2), "10:00",
			entity.PaymentStatusUnpaid, "15.00", time.Now().Add(-time.Hour))
		b2 := seedBooking(store, "court-01", "alice", futureDate(3), "10:00",
			entity.PaymentStatusUnpaid, "10.00", time.Now())

		res, err := svc.Member.RemoveMember(ctx, "alice", testActor)
		require.NoError(t, err)
		require.Equal(t, string(OutcomeSuccess), res.Status)
		assert.True(t, res.DebtPreserved)
		assert.Equal(t, "25.00", res.PaymentDue.StringFixed(2))

		assert.NotContains(t, store.members, "alice")
		assert.Empty(t, store.bookings)

		pt := store.pending["alice"]
		require.NotNil(t, pt)
		assert.Equal(t, "alice@example.com", pt.Email)
		assert.Equal(t, "25.00", pt.PaymentDue.StringFixed(2))

		// One DELETE entry per removed booking; the trail outlives the rows.
		require.Len(t, store.audits, 2)
		seen := map[string]bool{}
		for _, rec := range store.audits {
			assert.Equal(t, entity.AuditActionDelete, rec.Action)
			assert.NotNil(t, rec.OldValues)
			assert.Nil(t, rec.NewValues)
			seen[rec.BookingID.String()] = true
		}
		assert.True(t, seen[b1.String()])
		assert.True(t, seen[b2.String()])
	})

	t.Run("no debt, no pending termination", func(t *testing.T) {
		svc, store := newTestService(t)
		seedMember(store, "alice", "alice@example.com", "0.00")

		res, err := svc.Member.RemoveMember(ctx, "alice", testActor)
		require.NoError(t, err)
		require.Equal(t, string(OutcomeSuccess), res.Status)
		assert.False(t, res.DebtPreserved)
		assert.Empty(t, store.pending)
		assert.NotContains(t, store.members, "alice")
	})

	t.Run("unknown member", func(t *testing.T) {
		svc, _ := newTestService(t)

		res, err := svc.Member.RemoveMember(ctx, "ghost", testActor)
		require.NoError(t, err)
		assert.Equal(t, string(OutcomeNotFound), res.Status)
	})
}

func TestListPendingTerminations(t *testing.T) {
	ctx := context.Background()

	svc, store := newTestService(t)
	seedMember(store, "alice", "alice@example.com", "25.00")
	_, err := svc.Member.RemoveMember(ctx, "alice", testActor)
	require.NoError(t, err)

	pts, err := svc.Member.ListPendingTerminations(ctx)
	require.NoError(t, err)
	require.Len(t, pts, 1)
	assert.Equal(t, "alice", pts[0].ID)
	assert.Equal(t, "25.00", pts[0].PaymentDue.StringFixed(2))
	require.NotNil(t, store.pending["alice"])
}
