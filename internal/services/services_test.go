package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/auth"
	"github.com/DuongTranDang1004/SEPM/internal/media"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/notify"
	"github.com/DuongTranDang1004/SEPM/internal/repository/memory"
	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

// captureSink records pushed events per user.
type captureSink struct {
	mu     sync.Mutex
	events map[string][]notify.Event
}

func newCaptureSink() *captureSink {
	return &captureSink{events: make(map[string][]notify.Event)}
}

func (c *captureSink) PushToUser(userID string, ev notify.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events[userID] = append(c.events[userID], ev)
}

func (c *captureSink) forUser(userID string) []notify.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notify.Event(nil), c.events[userID]...)
}

type fixture struct {
	store *memory.Store
	blobs *storage.MemoryStore
	coord *media.Coordinator
	sink  *captureSink
	log   *zap.SugaredLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zap.NewNop().Sugar()
	blobs := storage.NewMemoryStore("https://blobs.test")
	return &fixture{
		store: memory.NewStore(),
		blobs: blobs,
		coord: media.NewCoordinator(blobs, log),
		sink:  newCaptureSink(),
		log:   log,
	}
}

func (f *fixture) addTenant(t *testing.T, name string, active bool) *models.Tenant {
	t.Helper()
	now := time.Now()
	tn := &models.Tenant{Account: models.Account{
		ID:        uuid.NewString(),
		Email:     name + "@example.com",
		Password:  "$2a$10$hash",
		Name:      name,
		Role:      models.RoleTenant,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	require.NoError(t, f.store.Tenants().Create(context.Background(), tn))
	return tn
}

func (f *fixture) addLandlord(t *testing.T, name string) *models.Landlord {
	t.Helper()
	now := time.Now()
	l := &models.Landlord{Account: models.Account{
		ID:        uuid.NewString(),
		Email:     name + "@example.com",
		Password:  "$2a$10$hash",
		Name:      name,
		Role:      models.RoleLandlord,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	require.NoError(t, f.store.Landlords().Create(context.Background(), l))
	return l
}

func (f *fixture) swipeService() *SwipeService {
	return NewSwipeService(f.store.Tenants(), f.store.Swipes(), f.store.Matches(), f.store.Conversations(), f.sink, f.log)
}

func (f *fixture) authService() *AuthService {
	tokens := auth.NewManager("test-secret", time.Hour)
	return NewAuthService(f.store.Tenants(), f.store.Landlords(), f.store.Accounts(), f.coord, tokens, f.log)
}

func (f *fixture) tenantService() *TenantService {
	return NewTenantService(f.store.Tenants(), f.store.Rooms(), f.store.Bookmarks(), f.coord, f.log)
}

func (f *fixture) landlordService() *LandlordService {
	return NewLandlordService(f.store.Landlords(), f.store.Rooms(), f.coord, f.log)
}

func (f *fixture) conversationService() *ConversationService {
	return NewConversationService(f.store.Conversations(), f.store.Messages(), f.store.Accounts(), f.coord, f.sink, f.log)
}

func pngUpload(name string) *storage.File {
	return &storage.File{Name: name, ContentType: "image/png", Data: []byte("png-bytes")}
}
