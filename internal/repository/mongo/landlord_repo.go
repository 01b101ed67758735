package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
)

type LandlordRepo struct {
	col *mongo.Collection
}

func (r *LandlordRepo) Create(ctx context.Context, l *models.Landlord) error {
	_, err := r.col.InsertOne(ctx, l)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("email already registered: %s", l.Email)
	}
	return err
}

func (r *LandlordRepo) GetByID(ctx context.Context, id string) (*models.Landlord, error) {
	var l models.Landlord
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LandlordRepo) GetByEmail(ctx context.Context, email string) (*models.Landlord, error) {
	var l models.Landlord
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LandlordRepo) Update(ctx context.Context, l *models.Landlord) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	return err
}
