package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/repository"
)

// matchFactory turns a mutual accept into a match plus its conversation.
// The conversation is created first so the match never points at a missing
// conversation; if the match insert then fails, the fresh conversation is
// compensated away.
type matchFactory struct {
	matches repository.MatchRepository
	convs   repository.ConversationRepository
	log     *zap.SugaredLogger
	now     func() time.Time
}

// create returns the match for the two tenants, building it if the pair has
// never matched. When a concurrent caller won the pairKey race, the loser's
// conversation is deleted and the winner's match returned.
func (f *matchFactory) create(ctx context.Context, tenant1ID, tenant2ID string) (*models.Match, bool, error) {
	now := f.now()
	conv := &models.Conversation{
		ID:             uuid.NewString(),
		ParticipantIDs: []string{tenant1ID, tenant2ID},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := f.convs.Create(ctx, conv); err != nil {
		return nil, false, apperrors.Upstream(err, "creating conversation")
	}

	m := &models.Match{
		ID:             uuid.NewString(),
		Tenant1ID:      tenant1ID,
		Tenant2ID:      tenant2ID,
		PairKey:        models.PairKey(tenant1ID, tenant2ID),
		ConversationID: conv.ID,
		Status:         models.MatchActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := f.matches.Create(ctx, m)
	if err == nil {
		return m, true, nil
	}

	if delErr := f.convs.Delete(ctx, conv.ID); delErr != nil {
		f.log.Errorw("deleting orphaned conversation failed", "conversation", conv.ID, "error", delErr)
	}
	if apperrors.IsKind(err, apperrors.KindConflict) {
		existing, getErr := f.matches.GetByPairKey(ctx, m.PairKey)
		if getErr == nil && existing != nil {
			return existing, false, nil
		}
		return nil, false, apperrors.Upstream(err, "resolving existing match")
	}
	return nil, false, apperrors.Upstream(err, "creating match")
}
