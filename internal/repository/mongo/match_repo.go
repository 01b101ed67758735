package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
)

type MatchRepo struct {
	col *mongo.Collection
}

func (r *MatchRepo) Create(ctx context.Context, m *models.Match) error {
	_, err := r.col.InsertOne(ctx, m)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("match already exists for pair %s", m.PairKey)
	}
	return err
}

func (r *MatchRepo) GetByPairKey(ctx context.Context, pairKey string) (*models.Match, error) {
	var m models.Match
	err := r.col.FindOne(ctx, bson.M{"pairKey": pairKey}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListActiveByTenant runs two equality queries and merges them; the store
// has no OR across different fields.
func (r *MatchRepo) ListActiveByTenant(ctx context.Context, tenantID string) ([]models.Match, error) {
	var matches []models.Match
	for _, field := range []string{"tenant1Id", "tenant2Id"} {
		cur, err := r.col.Find(ctx, bson.M{field: tenantID, "status": models.MatchActive})
		if err != nil {
			return nil, err
		}
		var part []models.Match
		if err := cur.All(ctx, &part); err != nil {
			cur.Close(ctx)
			return nil, err
		}
		cur.Close(ctx)
		matches = append(matches, part...)
	}
	return matches, nil
}
