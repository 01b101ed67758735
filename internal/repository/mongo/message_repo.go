package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DuongTranDang1004/SEPM/internal/models"
)

type MessageRepo struct {
	col *mongo.Collection
}

func (r *MessageRepo) Create(ctx context.Context, m *models.Message) error {
	_, err := r.col.InsertOne(ctx, m)
	return err
}

// ListByConversation returns the most recent messages in chronological order.
func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID string, limit int64) ([]models.Message, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var messages []models.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	// Query sorted newest first; reverse to oldest first for the client.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
