package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
)

type SwipeRepo struct {
	col *mongo.Collection
}

func (r *SwipeRepo) Create(ctx context.Context, s *models.Swipe) error {
	_, err := r.col.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("already swiped on tenant %s", s.TargetID)
	}
	return err
}

func (r *SwipeRepo) Get(ctx context.Context, swiperID, targetID string) (*models.Swipe, error) {
	var s models.Swipe
	err := r.col.FindOne(ctx, bson.M{"swiperId": swiperID, "targetId": targetID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SwipeRepo) ListBySwiper(ctx context.Context, swiperID string) ([]models.Swipe, error) {
	cur, err := r.col.Find(ctx, bson.M{"swiperId": swiperID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var swipes []models.Swipe
	if err := cur.All(ctx, &swipes); err != nil {
		return nil, err
	}
	return swipes, nil
}
