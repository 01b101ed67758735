// Package mongo implements the repository contracts on top of the MongoDB
// driver. Collections are keyed by UUID-string _id the way the rest of the
// system expects.
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collTenants       = "tenants"
	collLandlords     = "landlords"
	collRooms         = "rooms"
	collSwipes        = "swipes"
	collMatches       = "matches"
	collConversations = "conversations"
	collMessages      = "messages"
	collBookmarks     = "bookmarks"
)

// Repositories bundles every collection-backed repository.
type Repositories struct {
	Tenants       *TenantRepo
	Landlords     *LandlordRepo
	Accounts      *AccountRepo
	Rooms         *RoomRepo
	Swipes        *SwipeRepo
	Matches       *MatchRepo
	Conversations *ConversationRepo
	Messages      *MessageRepo
	Bookmarks     *BookmarkRepo
}

func New(db *mongo.Database) *Repositories {
	tenants := &TenantRepo{col: db.Collection(collTenants)}
	landlords := &LandlordRepo{col: db.Collection(collLandlords)}
	return &Repositories{
		Tenants:       tenants,
		Landlords:     landlords,
		Accounts:      &AccountRepo{tenants: tenants, landlords: landlords},
		Rooms:         &RoomRepo{col: db.Collection(collRooms)},
		Swipes:        &SwipeRepo{col: db.Collection(collSwipes)},
		Matches:       &MatchRepo{col: db.Collection(collMatches)},
		Conversations: &ConversationRepo{col: db.Collection(collConversations)},
		Messages:      &MessageRepo{col: db.Collection(collMessages)},
		Bookmarks:     &BookmarkRepo{col: db.Collection(collBookmarks)},
	}
}

// EnsureIndexes creates the unique indexes that back the duplicate-swipe,
// single-match-per-pair and single-bookmark-per-room invariants, plus the
// email uniqueness of both account collections. The read-then-write checks
// in the services remain, but these indexes close the race between
// concurrent duplicate requests.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		coll string
		keys bson.D
	}{
		{collTenants, bson.D{{Key: "email", Value: 1}}},
		{collLandlords, bson.D{{Key: "email", Value: 1}}},
		{collSwipes, bson.D{{Key: "swiperId", Value: 1}, {Key: "targetId", Value: 1}}},
		{collMatches, bson.D{{Key: "pairKey", Value: 1}}},
		{collBookmarks, bson.D{{Key: "tenantId", Value: 1}, {Key: "roomId", Value: 1}}},
	}
	for _, ix := range indexes {
		_, err := db.Collection(ix.coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    ix.keys,
			Options: unique,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
