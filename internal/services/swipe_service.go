package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/notify"
	"github.com/DuongTranDang1004/SEPM/internal/repository"
)

// rejectionCooldown keeps a freshly rejected tenant out of the candidate
// feed. Rejected targets are already excluded permanently by the swiped-set
// filter, so the window currently never changes the outcome; it stays to
// keep the feed stable if rejects ever become re-swipeable.
const rejectionCooldown = 10 * time.Minute

// SwipeResult is the outcome of one swipe.
type SwipeResult struct {
	Swipe   *models.Swipe `json:"swipe"`
	Matched bool          `json:"matched"`
	Match   *models.Match `json:"match,omitempty"`
}

type SwipeService struct {
	tenants repository.TenantRepository
	swipes  repository.SwipeRepository
	matches repository.MatchRepository
	factory *matchFactory
	sink    notify.Sink
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewSwipeService(
	tenants repository.TenantRepository,
	swipes repository.SwipeRepository,
	matches repository.MatchRepository,
	convs repository.ConversationRepository,
	sink notify.Sink,
	log *zap.SugaredLogger,
) *SwipeService {
	return &SwipeService{
		tenants: tenants,
		swipes:  swipes,
		matches: matches,
		factory: &matchFactory{matches: matches, convs: convs, log: log, now: time.Now},
		sink:    sink,
		log:     log,
		now:     time.Now,
	}
}

// ListCandidates returns the active tenants the swiper can still swipe on:
// everyone active except themself, anyone they already swiped, anyone they
// rejected within the cooldown window, and anyone they are matched with.
// Order is whatever the store returns.
func (s *SwipeService) ListCandidates(ctx context.Context, swiperID string) ([]models.Tenant, error) {
	swiper, err := s.tenants.GetByID(ctx, swiperID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading tenant %s", swiperID)
	}
	if swiper == nil || !swiper.Active {
		return nil, apperrors.NotFound("tenant %s not found", swiperID)
	}

	active, err := s.tenants.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Upstream(err, "listing active tenants")
	}
	swiped, err := s.swipes.ListBySwiper(ctx, swiperID)
	if err != nil {
		return nil, apperrors.Upstream(err, "listing swipes of %s", swiperID)
	}
	matches, err := s.matches.ListActiveByTenant(ctx, swiperID)
	if err != nil {
		return nil, apperrors.Upstream(err, "listing matches of %s", swiperID)
	}

	excluded := make(map[string]bool, len(swiped)+len(matches)+1)
	excluded[swiperID] = true
	cutoff := s.now().Add(-rejectionCooldown)
	for _, sw := range swiped {
		excluded[sw.TargetID] = true
		if sw.Action == models.SwipeReject && sw.CreatedAt.After(cutoff) {
			excluded[sw.TargetID] = true
		}
	}
	for _, m := range matches {
		excluded[m.Tenant1ID] = true
		excluded[m.Tenant2ID] = true
	}

	candidates := make([]models.Tenant, 0, len(active))
	for _, t := range active {
		if !excluded[t.ID] {
			candidates = append(candidates, t)
		}
	}
	return candidates, nil
}

// Swipe records the swiper's decision on the target. A mutual accept
// produces a match with its conversation; both tenants are then notified
// with the match details, otherwise only the target learns of the swipe.
func (s *SwipeService) Swipe(ctx context.Context, swiperID, targetID string, action models.SwipeAction) (*SwipeResult, error) {
	if action != models.SwipeAccept && action != models.SwipeReject {
		return nil, apperrors.InvalidArgument("unknown swipe action %q", action)
	}
	if swiperID == targetID {
		return nil, apperrors.InvalidArgument("cannot swipe on yourself")
	}

	swiper, err := s.tenants.GetByID(ctx, swiperID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading tenant %s", swiperID)
	}
	if swiper == nil || !swiper.Active {
		return nil, apperrors.NotFound("tenant %s not found", swiperID)
	}
	target, err := s.tenants.GetByID(ctx, targetID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading tenant %s", targetID)
	}
	if target == nil || !target.Active {
		return nil, apperrors.NotFound("tenant %s not found", targetID)
	}

	sw := &models.Swipe{
		ID:        uuid.NewString(),
		SwiperID:  swiperID,
		TargetID:  targetID,
		Action:    action,
		CreatedAt: s.now(),
	}
	if err := s.swipes.Create(ctx, sw); err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			return nil, apperrors.Conflict("already swiped on tenant %s", targetID)
		}
		return nil, apperrors.Upstream(err, "recording swipe")
	}

	result := &SwipeResult{Swipe: sw}
	if action == models.SwipeReject {
		return result, nil
	}

	reverse, err := s.swipes.Get(ctx, targetID, swiperID)
	if err != nil {
		return nil, apperrors.Upstream(err, "checking reverse swipe")
	}
	if reverse == nil || reverse.Action != models.SwipeAccept {
		s.sink.PushToUser(targetID, notify.Event{
			Type:       notify.EventNewSwipe,
			Timestamp:  s.now(),
			SenderID:   swiperID,
			SenderName: swiper.Name,
		})
		return result, nil
	}

	match, created, err := s.factory.create(ctx, swiperID, targetID)
	if err != nil {
		return nil, err
	}
	result.Matched = true
	result.Match = match
	if created {
		s.log.Infow("tenants matched", "match", match.ID, "tenant1", match.Tenant1ID, "tenant2", match.Tenant2ID)
	}
	ev := notify.Event{
		Type:           notify.EventNewSwipe,
		Timestamp:      s.now(),
		IsMatch:        true,
		MatchID:        match.ID,
		ConversationID: match.ConversationID,
	}
	evForTarget := ev
	evForTarget.SenderID = swiperID
	evForTarget.SenderName = swiper.Name
	s.sink.PushToUser(targetID, evForTarget)
	evForSwiper := ev
	evForSwiper.SenderID = targetID
	evForSwiper.SenderName = target.Name
	s.sink.PushToUser(swiperID, evForSwiper)
	return result, nil
}
