package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DuongTranDang1004/SEPM/internal/models"
)

type RoomRepo struct {
	col *mongo.Collection
}

func (r *RoomRepo) Create(ctx context.Context, room *models.Room) error {
	_, err := r.col.InsertOne(ctx, room)
	return err
}

func (r *RoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepo) ListPublished(ctx context.Context) ([]models.Room, error) {
	cur, err := r.col.Find(ctx, bson.M{"status": models.RoomPublished})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rooms []models.Room
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepo) Update(ctx context.Context, room *models.Room) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": room.ID}, room)
	return err
}

func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
