package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/auth"
	"github.com/DuongTranDang1004/SEPM/internal/repository"
)

// AccountService covers the operations shared by both roles.
type AccountService struct {
	accounts repository.AccountRepository
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewAccountService(accounts repository.AccountRepository, log *zap.SugaredLogger) *AccountService {
	return &AccountService{accounts: accounts, log: log, now: time.Now}
}

func (s *AccountService) ChangePassword(ctx context.Context, userID, current, next, confirm string) error {
	if len(next) < 8 {
		return apperrors.InvalidArgument("password must be at least 8 characters")
	}
	if next != confirm {
		return apperrors.InvalidArgument("passwords do not match")
	}
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return apperrors.Upstream(err, "loading account %s", userID)
	}
	if account == nil {
		return apperrors.NotFound("account %s not found", userID)
	}
	if !auth.CheckPassword(account.Password, current) {
		return apperrors.InvalidArgument("current password is wrong")
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return apperrors.Upstream(err, "hashing password")
	}
	account.Password = hash
	account.UpdatedAt = s.now()
	if err := s.accounts.UpdateAccount(ctx, account); err != nil {
		return apperrors.Upstream(err, "updating account %s", userID)
	}
	s.log.Infow("password changed", "user", userID)
	return nil
}

func (s *AccountService) Deactivate(ctx context.Context, userID string) error {
	return s.setActive(ctx, userID, false)
}

// Activate restores a deactivated account. The profile keeps all its data
// while inactive; deactivated tenants simply drop out of the candidate feed
// and cannot log in.
func (s *AccountService) Activate(ctx context.Context, userID string) error {
	return s.setActive(ctx, userID, true)
}

func (s *AccountService) setActive(ctx context.Context, userID string, active bool) error {
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return apperrors.Upstream(err, "loading account %s", userID)
	}
	if account == nil {
		return apperrors.NotFound("account %s not found", userID)
	}
	if account.Active == active {
		return nil
	}
	account.Active = active
	account.UpdatedAt = s.now()
	if err := s.accounts.UpdateAccount(ctx, account); err != nil {
		return apperrors.Upstream(err, "updating account %s", userID)
	}
	s.log.Infow("account active flag changed", "user", userID, "active", active)
	return nil
}
