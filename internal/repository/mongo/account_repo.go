package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/DuongTranDang1004/SEPM/internal/models"
)

// AccountRepo resolves accounts across the tenant and landlord collections.
// There is no joint collection; lookups try tenants first, then landlords,
// matching how the document store is laid out.
type AccountRepo struct {
	tenants   *TenantRepo
	landlords *LandlordRepo
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	t, err := r.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t != nil {
		a := t.Account
		return &a, nil
	}
	l, err := r.landlords.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l != nil {
		a := l.Account
		return &a, nil
	}
	return nil, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	t, err := r.tenants.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if t != nil {
		a := t.Account
		return &a, nil
	}
	l, err := r.landlords.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if l != nil {
		a := l.Account
		return &a, nil
	}
	return nil, nil
}

// UpdateAccount writes only the shared account fields with $set so tenant
// criteria are never clobbered by account-level operations.
func (r *AccountRepo) UpdateAccount(ctx context.Context, a *models.Account) error {
	update := bson.M{"$set": bson.M{
		"email":       a.Email,
		"password":    a.Password,
		"name":        a.Name,
		"phone":       a.Phone,
		"avatarUrl":   a.AvatarURL,
		"description": a.Description,
		"active":      a.Active,
		"updatedAt":   a.UpdatedAt,
	}}

	col := r.tenants.col
	if a.Role == models.RoleLandlord {
		col = r.landlords.col
	}
	_, err := col.UpdateOne(ctx, bson.M{"_id": a.ID}, update)
	return err
}
