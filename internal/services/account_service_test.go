package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
)

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.authService().Signup(ctx, tenantSignup("ann"))
	require.NoError(t, err)
	svc := NewAccountService(f.store.Accounts(), f.log)

	require.NoError(t, svc.ChangePassword(ctx, res.UserID, "password123", "newpassword1", "newpassword1"))

	_, err = f.authService().Login(ctx, "ann@example.com", "password123")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized), "old password stops working")
	_, err = f.authService().Login(ctx, "ann@example.com", "newpassword1")
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.authService().Signup(ctx, tenantSignup("ann"))
	require.NoError(t, err)
	svc := NewAccountService(f.store.Accounts(), f.log)

	err = svc.ChangePassword(ctx, res.UserID, "not-it", "newpassword1", "newpassword1")
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestChangePasswordMismatchedConfirm(t *testing.T) {
	f := newFixture(t)
	svc := NewAccountService(f.store.Accounts(), f.log)
	err := svc.ChangePassword(context.Background(), "any", "cur", "newpassword1", "other")
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestDeactivateRemovesTenantFromFeedAndReactivateRestores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	me := f.addTenant(t, "me", true)
	other := f.addTenant(t, "other", true)
	accounts := NewAccountService(f.store.Accounts(), f.log)
	swipes := f.swipeService()

	require.NoError(t, accounts.Deactivate(ctx, other.ID))
	got, err := swipes.ListCandidates(ctx, me.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, accounts.Activate(ctx, other.ID))
	got, err = swipes.ListCandidates(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID}, candidateIDs(got))
}

func TestSetActiveUnknownAccount(t *testing.T) {
	f := newFixture(t)
	svc := NewAccountService(f.store.Accounts(), f.log)
	err := svc.Deactivate(context.Background(), "ghost")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
