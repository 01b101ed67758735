// Package repository defines the persistence contracts. Implementations
// filter by equality only; OR across fields is emulated by running several
// queries and merging in memory. Lookups return (nil, nil) when the
// document is absent.
package repository

import (
	"context"

	"github.com/DuongTranDang1004/SEPM/internal/models"
)

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	GetByEmail(ctx context.Context, email string) (*models.Tenant, error)
	ListActive(ctx context.Context) ([]models.Tenant, error)
	Update(ctx context.Context, t *models.Tenant) error
}

type LandlordRepository interface {
	Create(ctx context.Context, l *models.Landlord) error
	GetByID(ctx context.Context, id string) (*models.Landlord, error)
	GetByEmail(ctx context.Context, email string) (*models.Landlord, error)
	Update(ctx context.Context, l *models.Landlord) error
}

// AccountRepository resolves identities across both the tenants and
// landlords collections.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// UpdateAccount persists only the shared account fields, leaving
	// role-specific fields untouched.
	UpdateAccount(ctx context.Context, a *models.Account) error
}

type RoomRepository interface {
	Create(ctx context.Context, r *models.Room) error
	GetByID(ctx context.Context, id string) (*models.Room, error)
	ListPublished(ctx context.Context) ([]models.Room, error)
	Update(ctx context.Context, r *models.Room) error
	Delete(ctx context.Context, id string) error
}

type SwipeRepository interface {
	// Create fails with a Conflict error when a swipe for the same
	// (swiperId, targetId) pair already exists.
	Create(ctx context.Context, s *models.Swipe) error
	Get(ctx context.Context, swiperID, targetID string) (*models.Swipe, error)
	ListBySwiper(ctx context.Context, swiperID string) ([]models.Swipe, error)
}

type MatchRepository interface {
	// Create fails with a Conflict error when a match with the same
	// pairKey already exists.
	Create(ctx context.Context, m *models.Match) error
	GetByPairKey(ctx context.Context, pairKey string) (*models.Match, error)
	ListActiveByTenant(ctx context.Context, tenantID string) ([]models.Match, error)
}

type ConversationRepository interface {
	Create(ctx context.Context, c *models.Conversation) error
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	ListByParticipant(ctx context.Context, userID string) ([]models.Conversation, error)
	Update(ctx context.Context, c *models.Conversation) error
	Delete(ctx context.Context, id string) error
}

type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error
	ListByConversation(ctx context.Context, conversationID string, limit int64) ([]models.Message, error)
}

type BookmarkRepository interface {
	// Create fails with a Conflict error when a bookmark for the same
	// (tenantId, roomId) pair already exists.
	Create(ctx context.Context, b *models.Bookmark) error
	Get(ctx context.Context, tenantID, roomID string) (*models.Bookmark, error)
	ListByTenant(ctx context.Context, tenantID string) ([]models.Bookmark, error)
	Delete(ctx context.Context, id string) error
}
