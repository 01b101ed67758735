package services

import (
	"context"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/repository"
)

// RoomService is the read side of listings, available to any signed-in user.
type RoomService struct {
	rooms repository.RoomRepository
}

func NewRoomService(rooms repository.RoomRepository) *RoomService {
	return &RoomService{rooms: rooms}
}

func (s *RoomService) ListPublished(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.rooms.ListPublished(ctx)
	if err != nil {
		return nil, apperrors.Upstream(err, "listing rooms")
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading room %s", roomID)
	}
	if room == nil {
		return nil, apperrors.NotFound("room %s not found", roomID)
	}
	return room, nil
}
