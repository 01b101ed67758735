package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
)

type TenantRepo struct {
	col *mongo.Collection
}

func (r *TenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	_, err := r.col.InsertOne(ctx, t)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("email already registered: %s", t.Email)
	}
	return err
}

func (r *TenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	var t models.Tenant
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepo) GetByEmail(ctx context.Context, email string) (*models.Tenant, error) {
	var t models.Tenant
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepo) ListActive(ctx context.Context) ([]models.Tenant, error) {
	cur, err := r.col.Find(ctx, bson.M{"role": models.RoleTenant, "active": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tenants []models.Tenant
	if err := cur.All(ctx, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

func (r *TenantRepo) Update(ctx context.Context, t *models.Tenant) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	return err
}
