package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/notify"
)

func candidateIDs(ts []models.Tenant) []string {
	ids := make([]string, 0, len(ts))
	for _, t := range ts {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestListCandidatesExcludesSelfSwipedAndMatched(t *testing.T) {
	f := newFixture(t)
	svc := f.swipeService()
	ctx := context.Background()

	me := f.addTenant(t, "me", true)
	fresh := f.addTenant(t, "fresh", true)
	accepted := f.addTenant(t, "accepted", true)
	rejected := f.addTenant(t, "rejected", true)
	matched := f.addTenant(t, "matched", true)
	f.addTenant(t, "inactive", false)

	_, err := svc.Swipe(ctx, me.ID, accepted.ID, models.SwipeAccept)
	require.NoError(t, err)
	_, err = svc.Swipe(ctx, me.ID, rejected.ID, models.SwipeReject)
	require.NoError(t, err)

	// mutual accept with "matched"
	_, err = svc.Swipe(ctx, matched.ID, me.ID, models.SwipeAccept)
	require.NoError(t, err)
	res, err := svc.Swipe(ctx, me.ID, matched.ID, models.SwipeAccept)
	require.NoError(t, err)
	require.True(t, res.Matched)

	got, err := svc.ListCandidates(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{fresh.ID}, candidateIDs(got))
}

func TestListCandidatesRejectStaysExcludedAfterCooldown(t *testing.T) {
	f := newFixture(t)
	svc := f.swipeService()
	ctx := context.Background()

	me := f.addTenant(t, "me", true)
	rejected := f.addTenant(t, "rejected", true)

	_, err := svc.Swipe(ctx, me.ID, rejected.ID, models.SwipeReject)
	require.NoError(t, err)

	// move the clock past the cooldown window
	svc.now = func() time.Time { return time.Now().Add(rejectionCooldown + time.Minute) }
	got, err := svc.ListCandidates(ctx, me.ID)
	require.NoError(t, err)
	assert.Empty(t, got, "a rejected tenant never re-enters the feed")
}

func TestListCandidatesUnknownTenant(t *testing.T) {
	f := newFixture(t)
	_, err := f.swipeService().ListCandidates(context.Background(), "nope")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestSwipeOnSelf(t *testing.T) {
	f := newFixture(t)
	me := f.addTenant(t, "me", true)
	_, err := f.swipeService().Swipe(context.Background(), me.ID, me.ID, models.SwipeAccept)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestSwipeUnknownTarget(t *testing.T) {
	f := newFixture(t)
	me := f.addTenant(t, "me", true)
	_, err := f.swipeService().Swipe(context.Background(), me.ID, "ghost", models.SwipeAccept)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestSwipeTwiceSameTarget(t *testing.T) {
	f := newFixture(t)
	svc := f.swipeService()
	ctx := context.Background()
	me := f.addTenant(t, "me", true)
	other := f.addTenant(t, "other", true)

	_, err := svc.Swipe(ctx, me.ID, other.ID, models.SwipeAccept)
	require.NoError(t, err)
	_, err = svc.Swipe(ctx, me.ID, other.ID, models.SwipeReject)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestRejectNeverMatches(t *testing.T) {
	f := newFixture(t)
	svc := f.swipeService()
	ctx := context.Background()
	me := f.addTenant(t, "me", true)
	other := f.addTenant(t, "other", true)

	_, err := svc.Swipe(ctx, other.ID, me.ID, models.SwipeAccept)
	require.NoError(t, err)
	res, err := svc.Swipe(ctx, me.ID, other.ID, models.SwipeReject)
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Nil(t, res.Match)
	assert.Empty(t, f.sink.forUser(other.ID), "a reject is silent")
}

func TestOneSidedAcceptNotifiesTargetOnly(t *testing.T) {
	f := newFixture(t)
	svc := f.swipeService()
	ctx := context.Background()
	me := f.addTenant(t, "me", true)
	other := f.addTenant(t, "other", true)

	res, err := svc.Swipe(ctx, me.ID, other.ID, models.SwipeAccept)
	require.NoError(t, err)
	assert.False(t, res.Matched)

	evs := f.sink.forUser(other.ID)
	require.Len(t, evs, 1)
	assert.Equal(t, notify.EventNewSwipe, evs[0].Type)
	assert.False(t, evs[0].IsMatch)
	assert.Equal(t, me.ID, evs[0].SenderID)
	assert.Empty(t, f.sink.forUser(me.ID))
}

func TestMutualAcceptCreatesMatchAndConversation(t *testing.T) {
	f := newFixture(t)
	svc := f.swipeService()
	ctx := context.Background()
	ann := f.addTenant(t, "ann", true)
	bob := f.addTenant(t, "bob", true)

	_, err := svc.Swipe(ctx, ann.ID, bob.ID, models.SwipeAccept)
	require.NoError(t, err)
	res, err := svc.Swipe(ctx, bob.ID, ann.ID, models.SwipeAccept)
	require.NoError(t, err)

	require.True(t, res.Matched)
	require.NotNil(t, res.Match)
	assert.Equal(t, models.MatchActive, res.Match.Status)
	assert.Equal(t, models.PairKey(ann.ID, bob.ID), res.Match.PairKey)

	conv, err := f.store.Conversations().GetByID(ctx, res.Match.ConversationID)
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.True(t, conv.HasParticipant(ann.ID))
	assert.True(t, conv.HasParticipant(bob.ID))

	for _, id := range []string{ann.ID, bob.ID} {
		evs := f.sink.forUser(id)
		require.Len(t, evs, 1, "both sides hear about the match")
		assert.True(t, evs[0].IsMatch)
		assert.Equal(t, res.Match.ID, evs[0].MatchID)
		assert.Equal(t, conv.ID, evs[0].ConversationID)
	}
}

func TestMatchFailureRemovesFreshConversation(t *testing.T) {
	f := newFixture(t)
	svc := f.swipeService()
	ctx := context.Background()
	ann := f.addTenant(t, "ann", true)
	bob := f.addTenant(t, "bob", true)

	_, err := svc.Swipe(ctx, ann.ID, bob.ID, models.SwipeAccept)
	require.NoError(t, err)

	f.store.MatchCreateErr = assert.AnError
	_, err = svc.Swipe(ctx, bob.ID, ann.ID, models.SwipeAccept)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))

	convs, err := f.store.Conversations().ListByParticipant(ctx, ann.ID)
	require.NoError(t, err)
	assert.Empty(t, convs, "the conversation created for the failed match must be gone")
}

func TestPairMatchesAtMostOnce(t *testing.T) {
	f := newFixture(t)
	svc := f.swipeService()
	ctx := context.Background()
	ann := f.addTenant(t, "ann", true)
	bob := f.addTenant(t, "bob", true)

	_, err := svc.Swipe(ctx, ann.ID, bob.ID, models.SwipeAccept)
	require.NoError(t, err)
	res, err := svc.Swipe(ctx, bob.ID, ann.ID, models.SwipeAccept)
	require.NoError(t, err)
	require.True(t, res.Matched)

	existing, created, err := svc.factory.create(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, res.Match.ID, existing.ID)

	convs, err := f.store.Conversations().ListByParticipant(ctx, ann.ID)
	require.NoError(t, err)
	assert.Len(t, convs, 1, "the losing attempt's conversation is compensated")
}
