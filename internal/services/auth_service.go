package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/auth"
	"github.com/DuongTranDang1004/SEPM/internal/media"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/repository"
	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

// SignupInput carries the shared fields of both roles plus the
// tenant-only preference block, which is ignored for landlords.
type SignupInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
	Phone           string
	Description     string
	Role            models.Role
	Avatar          *storage.File

	BudgetPerMonth     *int64
	StayLengthMonths   *int
	MoveInDate         *time.Time
	PreferredDistricts []string
	Age                *int
	Gender             models.Gender
	Smoking            bool
	Cooking            bool
	NeedWindow         bool
	MightShareBedRoom  bool
	MightShareToilet   bool
}

type AuthResult struct {
	Token   string      `json:"token"`
	UserID  string      `json:"userId"`
	Role    models.Role `json:"role"`
	Profile any         `json:"profile"`
}

type AuthService struct {
	tenants   repository.TenantRepository
	landlords repository.LandlordRepository
	accounts  repository.AccountRepository
	coord     *media.Coordinator
	tokens    *auth.Manager
	log       *zap.SugaredLogger
	now       func() time.Time
}

func NewAuthService(
	tenants repository.TenantRepository,
	landlords repository.LandlordRepository,
	accounts repository.AccountRepository,
	coord *media.Coordinator,
	tokens *auth.Manager,
	log *zap.SugaredLogger,
) *AuthService {
	return &AuthService{
		tenants:   tenants,
		landlords: landlords,
		accounts:  accounts,
		coord:     coord,
		tokens:    tokens,
		log:       log,
		now:       time.Now,
	}
}

// Signup registers a tenant or landlord. The avatar, when present, is
// uploaded first and removed again if persisting the profile fails.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case email == "":
		return nil, apperrors.InvalidArgument("email is required")
	case in.Name == "":
		return nil, apperrors.InvalidArgument("name is required")
	case len(in.Password) < 8:
		return nil, apperrors.InvalidArgument("password must be at least 8 characters")
	case in.Password != in.ConfirmPassword:
		return nil, apperrors.InvalidArgument("passwords do not match")
	case in.Role != models.RoleTenant && in.Role != models.RoleLandlord:
		return nil, apperrors.InvalidArgument("unknown role %q", in.Role)
	}

	existing, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Upstream(err, "checking email %s", email)
	}
	if existing != nil {
		return nil, apperrors.Conflict("email %s is already registered", email)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Upstream(err, "hashing password")
	}

	now := s.now()
	account := models.Account{
		ID:          uuid.NewString(),
		Email:       email,
		Password:    hash,
		Name:        in.Name,
		Phone:       in.Phone,
		Description: in.Description,
		Role:        in.Role,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var groups []media.Group
	if in.Avatar != nil {
		groups = append(groups, media.Group{
			Folder: storage.FolderAvatars,
			Files:  []storage.File{media.ShrinkAvatar(*in.Avatar)},
		})
	}

	var profile any
	_, err = s.coord.Run(ctx, groups, func(ctx context.Context, urls map[string][]string) error {
		if avatars := urls[storage.FolderAvatars]; len(avatars) > 0 {
			account.AvatarURL = avatars[0]
		}
		switch in.Role {
		case models.RoleTenant:
			t := &models.Tenant{
				Account:            account,
				BudgetPerMonth:     in.BudgetPerMonth,
				StayLengthMonths:   in.StayLengthMonths,
				MoveInDate:         in.MoveInDate,
				PreferredDistricts: in.PreferredDistricts,
				Age:                in.Age,
				Gender:             in.Gender,
				Smoking:            in.Smoking,
				Cooking:            in.Cooking,
				NeedWindow:         in.NeedWindow,
				MightShareBedRoom:  in.MightShareBedRoom,
				MightShareToilet:   in.MightShareToilet,
			}
			profile = t
			if err := s.tenants.Create(ctx, t); err != nil {
				return apperrors.Upstream(err, "creating tenant")
			}
		default:
			l := &models.Landlord{Account: account}
			profile = l
			if err := s.landlords.Create(ctx, l); err != nil {
				return apperrors.Upstream(err, "creating landlord")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}
	s.log.Infow("account created", "user", account.ID, "role", account.Role)
	return &AuthResult{Token: token, UserID: account.ID, Role: account.Role, Profile: profile}, nil
}

// Login authenticates by email and password. Deactivated accounts cannot
// log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading account %s", email)
	}
	if account == nil {
		return nil, apperrors.NotFound("no account for %s", email)
	}
	if !account.Active {
		return nil, apperrors.Unauthorized("account is deactivated")
	}
	if !auth.CheckPassword(account.Password, password) {
		return nil, apperrors.Unauthorized("wrong password")
	}
	token, err := s.tokens.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: account.ID, Role: account.Role, Profile: account}, nil
}
