package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
)

type BookmarkRepo struct {
	col *mongo.Collection
}

func (r *BookmarkRepo) Create(ctx context.Context, b *models.Bookmark) error {
	_, err := r.col.InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("room already bookmarked")
	}
	return err
}

func (r *BookmarkRepo) Get(ctx context.Context, tenantID, roomID string) (*models.Bookmark, error) {
	var b models.Bookmark
	err := r.col.FindOne(ctx, bson.M{"tenantId": tenantID, "roomId": roomID}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookmarkRepo) ListByTenant(ctx context.Context, tenantID string) ([]models.Bookmark, error) {
	cur, err := r.col.Find(ctx, bson.M{"tenantId": tenantID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bookmarks []models.Bookmark
	if err := cur.All(ctx, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (r *BookmarkRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
