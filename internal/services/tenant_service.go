package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/media"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/repository"
	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

// TenantProfileUpdate holds the mutable profile fields. Pointer fields are
// applied only when set, so a partial update leaves the rest alone.
type TenantProfileUpdate struct {
	Name        *string
	Phone       *string
	Description *string

	BudgetPerMonth     *int64
	StayLengthMonths   *int
	MoveInDate         *time.Time
	PreferredDistricts *[]string
	Age                *int
	Gender             *models.Gender
	Smoking            *bool
	Cooking            *bool
	NeedWindow         *bool
	MightShareBedRoom  *bool
	MightShareToilet   *bool

	// RemoveAvatar deletes the current avatar. A new Avatar wins over it.
	RemoveAvatar bool
	Avatar       *storage.File
}

type TenantService struct {
	tenants   repository.TenantRepository
	rooms     repository.RoomRepository
	bookmarks repository.BookmarkRepository
	coord     *media.Coordinator
	log       *zap.SugaredLogger
	now       func() time.Time
}

func NewTenantService(
	tenants repository.TenantRepository,
	rooms repository.RoomRepository,
	bookmarks repository.BookmarkRepository,
	coord *media.Coordinator,
	log *zap.SugaredLogger,
) *TenantService {
	return &TenantService{
		tenants:   tenants,
		rooms:     rooms,
		bookmarks: bookmarks,
		coord:     coord,
		log:       log,
		now:       time.Now,
	}
}

func (s *TenantService) GetProfile(ctx context.Context, tenantID string) (*models.Tenant, error) {
	t, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading tenant %s", tenantID)
	}
	if t == nil {
		return nil, apperrors.NotFound("tenant %s not found", tenantID)
	}
	return t, nil
}

// UpdateProfile applies the partial update. When the avatar changes, the
// old file is deleted before the new one is uploaded; the new upload is
// rolled back if persisting the profile fails, but the old avatar is gone
// either way.
func (s *TenantService) UpdateProfile(ctx context.Context, tenantID string, up TenantProfileUpdate) (*models.Tenant, error) {
	t, err := s.GetProfile(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if up.Name != nil {
		t.Name = *up.Name
	}
	if up.Phone != nil {
		t.Phone = *up.Phone
	}
	if up.Description != nil {
		t.Description = *up.Description
	}
	if up.BudgetPerMonth != nil {
		t.BudgetPerMonth = up.BudgetPerMonth
	}
	if up.StayLengthMonths != nil {
		t.StayLengthMonths = up.StayLengthMonths
	}
	if up.MoveInDate != nil {
		t.MoveInDate = up.MoveInDate
	}
	if up.PreferredDistricts != nil {
		t.PreferredDistricts = *up.PreferredDistricts
	}
	if up.Age != nil {
		t.Age = up.Age
	}
	if up.Gender != nil {
		t.Gender = *up.Gender
	}
	if up.Smoking != nil {
		t.Smoking = *up.Smoking
	}
	if up.Cooking != nil {
		t.Cooking = *up.Cooking
	}
	if up.NeedWindow != nil {
		t.NeedWindow = *up.NeedWindow
	}
	if up.MightShareBedRoom != nil {
		t.MightShareBedRoom = *up.MightShareBedRoom
	}
	if up.MightShareToilet != nil {
		t.MightShareToilet = *up.MightShareToilet
	}

	var groups []media.Group
	if up.Avatar != nil || up.RemoveAvatar {
		s.coord.Delete(ctx, t.AvatarURL)
		t.AvatarURL = ""
	}
	if up.Avatar != nil {
		groups = append(groups, media.Group{
			Folder: storage.FolderAvatars,
			Files:  []storage.File{media.ShrinkAvatar(*up.Avatar)},
		})
	}

	t.UpdatedAt = s.now()
	_, err = s.coord.Run(ctx, groups, func(ctx context.Context, urls map[string][]string) error {
		if avatars := urls[storage.FolderAvatars]; len(avatars) > 0 {
			t.AvatarURL = avatars[0]
		}
		if err := s.tenants.Update(ctx, t); err != nil {
			return apperrors.Upstream(err, "updating tenant %s", tenantID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TenantService) BookmarkRoom(ctx context.Context, tenantID, roomID string) (*models.Bookmark, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading room %s", roomID)
	}
	if room == nil {
		return nil, apperrors.NotFound("room %s not found", roomID)
	}
	now := s.now()
	b := &models.Bookmark{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		RoomID:    roomID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.bookmarks.Create(ctx, b); err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			return nil, apperrors.Conflict("room %s is already bookmarked", roomID)
		}
		return nil, apperrors.Upstream(err, "creating bookmark")
	}
	return b, nil
}

func (s *TenantService) UnbookmarkRoom(ctx context.Context, tenantID, roomID string) error {
	b, err := s.bookmarks.Get(ctx, tenantID, roomID)
	if err != nil {
		return apperrors.Upstream(err, "loading bookmark")
	}
	if b == nil {
		return apperrors.NotFound("room %s is not bookmarked", roomID)
	}
	if err := s.bookmarks.Delete(ctx, b.ID); err != nil {
		return apperrors.Upstream(err, "deleting bookmark %s", b.ID)
	}
	return nil
}

// ListBookmarkedRooms resolves the tenant's bookmarks to rooms. A bookmark
// whose room has been deleted is pruned on the way through instead of
// surfacing a hole to the caller.
func (s *TenantService) ListBookmarkedRooms(ctx context.Context, tenantID string) ([]models.Room, error) {
	bs, err := s.bookmarks.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperrors.Upstream(err, "listing bookmarks of %s", tenantID)
	}
	rooms := make([]models.Room, 0, len(bs))
	for _, b := range bs {
		room, err := s.rooms.GetByID(ctx, b.RoomID)
		if err != nil {
			return nil, apperrors.Upstream(err, "loading room %s", b.RoomID)
		}
		if room == nil {
			if delErr := s.bookmarks.Delete(ctx, b.ID); delErr != nil {
				s.log.Warnw("pruning orphaned bookmark failed", "bookmark", b.ID, "error", delErr)
			}
			continue
		}
		rooms = append(rooms, *room)
	}
	return rooms, nil
}
