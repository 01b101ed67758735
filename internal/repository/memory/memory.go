// Package memory holds in-memory repository implementations used as test
// doubles. Behavior mirrors the mongo package: absent lookups return
// (nil, nil), duplicate unique keys return Conflict errors, and list order
// follows insertion order (callers must not rely on it).
package memory

import (
	"context"
	"sync"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/repository"
)

type Store struct {
	mu            sync.RWMutex
	tenants       map[string]models.Tenant
	tenantOrder   []string
	landlords     map[string]models.Landlord
	rooms         map[string]models.Room
	roomOrder     []string
	swipes        map[string]models.Swipe
	swipeOrder    []string
	matches       map[string]models.Match
	conversations map[string]models.Conversation
	messages      map[string]models.Message
	messageOrder  []string
	bookmarks     map[string]models.Bookmark
	bookmarkOrder []string

	// Error injection for failure-path tests. When set, the corresponding
	// write fails with the given error.
	TenantCreateErr  error
	TenantUpdateErr  error
	RoomCreateErr    error
	RoomUpdateErr    error
	MatchCreateErr   error
	MessageCreateErr error
	ConvCreateErr    error
	AccountUpdateErr error
}

func NewStore() *Store {
	return &Store{
		tenants:       make(map[string]models.Tenant),
		landlords:     make(map[string]models.Landlord),
		rooms:         make(map[string]models.Room),
		swipes:        make(map[string]models.Swipe),
		matches:       make(map[string]models.Match),
		conversations: make(map[string]models.Conversation),
		messages:      make(map[string]models.Message),
		bookmarks:     make(map[string]models.Bookmark),
	}
}

func (s *Store) Tenants() repository.TenantRepository             { return &tenantRepo{s} }
func (s *Store) Landlords() repository.LandlordRepository         { return &landlordRepo{s} }
func (s *Store) Accounts() repository.AccountRepository           { return &accountRepo{s} }
func (s *Store) Rooms() repository.RoomRepository                 { return &roomRepo{s} }
func (s *Store) Swipes() repository.SwipeRepository               { return &swipeRepo{s} }
func (s *Store) Matches() repository.MatchRepository              { return &matchRepo{s} }
func (s *Store) Conversations() repository.ConversationRepository { return &conversationRepo{s} }
func (s *Store) Messages() repository.MessageRepository           { return &messageRepo{s} }
func (s *Store) Bookmarks() repository.BookmarkRepository         { return &bookmarkRepo{s} }

// ---- tenants ----

type tenantRepo struct{ s *Store }

func (r *tenantRepo) Create(_ context.Context, t *models.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.TenantCreateErr != nil {
		return r.s.TenantCreateErr
	}
	for _, existing := range r.s.tenants {
		if existing.Email == t.Email {
			return apperrors.Conflict("email already registered: %s", t.Email)
		}
	}
	r.s.tenants[t.ID] = *t
	r.s.tenantOrder = append(r.s.tenantOrder, t.ID)
	return nil
}

func (r *tenantRepo) GetByID(_ context.Context, id string) (*models.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if t, ok := r.s.tenants[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *tenantRepo) GetByEmail(_ context.Context, email string) (*models.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tenants {
		if t.Email == email {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

func (r *tenantRepo) ListActive(_ context.Context) ([]models.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Tenant
	for _, id := range r.s.tenantOrder {
		t, ok := r.s.tenants[id]
		if ok && t.Active && t.Role == models.RoleTenant {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *tenantRepo) Update(_ context.Context, t *models.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.TenantUpdateErr != nil {
		return r.s.TenantUpdateErr
	}
	r.s.tenants[t.ID] = *t
	return nil
}

// ---- landlords ----

type landlordRepo struct{ s *Store }

func (r *landlordRepo) Create(_ context.Context, l *models.Landlord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.landlords {
		if existing.Email == l.Email {
			return apperrors.Conflict("email already registered: %s", l.Email)
		}
	}
	r.s.landlords[l.ID] = *l
	return nil
}

func (r *landlordRepo) GetByID(_ context.Context, id string) (*models.Landlord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if l, ok := r.s.landlords[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *landlordRepo) GetByEmail(_ context.Context, email string) (*models.Landlord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.landlords {
		if l.Email == email {
			out := l
			return &out, nil
		}
	}
	return nil, nil
}

func (r *landlordRepo) Update(_ context.Context, l *models.Landlord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.landlords[l.ID] = *l
	return nil
}

// ---- accounts ----

type accountRepo struct{ s *Store }

func (r *accountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if t, _ := (&tenantRepo{r.s}).GetByID(ctx, id); t != nil {
		a := t.Account
		return &a, nil
	}
	if l, _ := (&landlordRepo{r.s}).GetByID(ctx, id); l != nil {
		a := l.Account
		return &a, nil
	}
	return nil, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if t, _ := (&tenantRepo{r.s}).GetByEmail(ctx, email); t != nil {
		a := t.Account
		return &a, nil
	}
	if l, _ := (&landlordRepo{r.s}).GetByEmail(ctx, email); l != nil {
		a := l.Account
		return &a, nil
	}
	return nil, nil
}

func (r *accountRepo) UpdateAccount(_ context.Context, a *models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.AccountUpdateErr != nil {
		return r.s.AccountUpdateErr
	}
	if t, ok := r.s.tenants[a.ID]; ok {
		t.Account = *a
		r.s.tenants[a.ID] = t
		return nil
	}
	if l, ok := r.s.landlords[a.ID]; ok {
		l.Account = *a
		r.s.landlords[a.ID] = l
	}
	return nil
}

// ---- rooms ----

type roomRepo struct{ s *Store }

func (r *roomRepo) Create(_ context.Context, room *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.RoomCreateErr != nil {
		return r.s.RoomCreateErr
	}
	r.s.rooms[room.ID] = *room
	r.s.roomOrder = append(r.s.roomOrder, room.ID)
	return nil
}

func (r *roomRepo) GetByID(_ context.Context, id string) (*models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if room, ok := r.s.rooms[id]; ok {
		return &room, nil
	}
	return nil, nil
}

func (r *roomRepo) ListPublished(_ context.Context) ([]models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Room
	for _, id := range r.s.roomOrder {
		room, ok := r.s.rooms[id]
		if ok && room.Status == models.RoomPublished {
			out = append(out, room)
		}
	}
	return out, nil
}

func (r *roomRepo) Update(_ context.Context, room *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.RoomUpdateErr != nil {
		return r.s.RoomUpdateErr
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *roomRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.rooms, id)
	return nil
}

// ---- swipes ----

type swipeRepo struct{ s *Store }

func (r *swipeRepo) Create(_ context.Context, sw *models.Swipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.swipes {
		if existing.SwiperID == sw.SwiperID && existing.TargetID == sw.TargetID {
			return apperrors.Conflict("already swiped on tenant %s", sw.TargetID)
		}
	}
	r.s.swipes[sw.ID] = *sw
	r.s.swipeOrder = append(r.s.swipeOrder, sw.ID)
	return nil
}

func (r *swipeRepo) Get(_ context.Context, swiperID, targetID string) (*models.Swipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sw := range r.s.swipes {
		if sw.SwiperID == swiperID && sw.TargetID == targetID {
			out := sw
			return &out, nil
		}
	}
	return nil, nil
}

func (r *swipeRepo) ListBySwiper(_ context.Context, swiperID string) ([]models.Swipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Swipe
	for _, id := range r.s.swipeOrder {
		sw, ok := r.s.swipes[id]
		if ok && sw.SwiperID == swiperID {
			out = append(out, sw)
		}
	}
	return out, nil
}

// ---- matches ----

type matchRepo struct{ s *Store }

func (r *matchRepo) Create(_ context.Context, m *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.MatchCreateErr != nil {
		return r.s.MatchCreateErr
	}
	for _, existing := range r.s.matches {
		if existing.PairKey == m.PairKey {
			return apperrors.Conflict("match already exists for pair %s", m.PairKey)
		}
	}
	r.s.matches[m.ID] = *m
	return nil
}

func (r *matchRepo) GetByPairKey(_ context.Context, pairKey string) (*models.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.matches {
		if m.PairKey == pairKey {
			out := m
			return &out, nil
		}
	}
	return nil, nil
}

func (r *matchRepo) ListActiveByTenant(_ context.Context, tenantID string) ([]models.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Match
	for _, m := range r.s.matches {
		if m.Status != models.MatchActive {
			continue
		}
		if m.Tenant1ID == tenantID || m.Tenant2ID == tenantID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ---- conversations ----

type conversationRepo struct{ s *Store }

func (r *conversationRepo) Create(_ context.Context, c *models.Conversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ConvCreateErr != nil {
		return r.s.ConvCreateErr
	}
	r.s.conversations[c.ID] = *c
	return nil
}

func (r *conversationRepo) GetByID(_ context.Context, id string) (*models.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.conversations[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *conversationRepo) ListByParticipant(_ context.Context, userID string) ([]models.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Conversation
	for _, c := range r.s.conversations {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *conversationRepo) Update(_ context.Context, c *models.Conversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.conversations[c.ID] = *c
	return nil
}

func (r *conversationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.conversations, id)
	return nil
}

// ---- messages ----

type messageRepo struct{ s *Store }

func (r *messageRepo) Create(_ context.Context, m *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.MessageCreateErr != nil {
		return r.s.MessageCreateErr
	}
	r.s.messages[m.ID] = *m
	r.s.messageOrder = append(r.s.messageOrder, m.ID)
	return nil
}

func (r *messageRepo) ListByConversation(_ context.Context, conversationID string, limit int64) ([]models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Message
	for _, id := range r.s.messageOrder {
		m, ok := r.s.messages[id]
		if ok && m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[int64(len(out))-limit:]
	}
	return out, nil
}

// ---- bookmarks ----

type bookmarkRepo struct{ s *Store }

func (r *bookmarkRepo) Create(_ context.Context, b *models.Bookmark) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.bookmarks {
		if existing.TenantID == b.TenantID && existing.RoomID == b.RoomID {
			return apperrors.Conflict("room already bookmarked")
		}
	}
	r.s.bookmarks[b.ID] = *b
	r.s.bookmarkOrder = append(r.s.bookmarkOrder, b.ID)
	return nil
}

func (r *bookmarkRepo) Get(_ context.Context, tenantID, roomID string) (*models.Bookmark, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.bookmarks {
		if b.TenantID == tenantID && b.RoomID == roomID {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

func (r *bookmarkRepo) ListByTenant(_ context.Context, tenantID string) ([]models.Bookmark, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Bookmark
	for _, id := range r.s.bookmarkOrder {
		b, ok := r.s.bookmarks[id]
		if ok && b.TenantID == tenantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *bookmarkRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.bookmarks, id)
	return nil
}
