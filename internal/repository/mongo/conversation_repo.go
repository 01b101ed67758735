package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DuongTranDang1004/SEPM/internal/models"
)

type ConversationRepo struct {
	col *mongo.Collection
}

func (r *ConversationRepo) Create(ctx context.Context, c *models.Conversation) error {
	_, err := r.col.InsertOne(ctx, c)
	return err
}

func (r *ConversationRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var c models.Conversation
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConversationRepo) ListByParticipant(ctx context.Context, userID string) ([]models.Conversation, error) {
	// Array membership is an equality match on the element.
	cur, err := r.col.Find(ctx, bson.M{"participantIds": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var conversations []models.Conversation
	if err := cur.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *ConversationRepo) Update(ctx context.Context, c *models.Conversation) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	return err
}

func (r *ConversationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
