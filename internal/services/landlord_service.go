package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/media"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/repository"
	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

type LandlordProfileUpdate struct {
	Name        *string
	Phone       *string
	Description *string

	RemoveAvatar bool
	Avatar       *storage.File
}

// RoomInput carries the listing fields plus the media to upload with it.
type RoomInput struct {
	Title             string
	Description       string
	RentPricePerMonth int64
	MinimumStayMonths int
	Address           string
	Latitude          float64
	Longitude         float64
	NumberOfToilets   int
	NumberOfBedRooms  int
	HasWindow         bool

	Thumbnail *storage.File
	Images    []storage.File
	Videos    []storage.File
	Documents []storage.File
}

// RoomUpdate holds the mutable listing fields, applied only when set.
type RoomUpdate struct {
	Title             *string
	Description       *string
	RentPricePerMonth *int64
	MinimumStayMonths *int
	Address           *string
	Latitude          *float64
	Longitude         *float64
	NumberOfToilets   *int
	NumberOfBedRooms  *int
	HasWindow         *bool
	Status            *models.RoomStatus
}

// RoomMediaInput is the payload of one add-media call. ReplaceThumbnail
// swaps the current thumbnail for the new one instead of failing.
type RoomMediaInput struct {
	Thumbnail        *storage.File
	ReplaceThumbnail bool
	Images           []storage.File
	Videos           []storage.File
	Documents        []storage.File
}

type LandlordService struct {
	landlords repository.LandlordRepository
	rooms     repository.RoomRepository
	coord     *media.Coordinator
	log       *zap.SugaredLogger
	now       func() time.Time
}

func NewLandlordService(
	landlords repository.LandlordRepository,
	rooms repository.RoomRepository,
	coord *media.Coordinator,
	log *zap.SugaredLogger,
) *LandlordService {
	return &LandlordService{
		landlords: landlords,
		rooms:     rooms,
		coord:     coord,
		log:       log,
		now:       time.Now,
	}
}

func (s *LandlordService) GetProfile(ctx context.Context, landlordID string) (*models.Landlord, error) {
	l, err := s.landlords.GetByID(ctx, landlordID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading landlord %s", landlordID)
	}
	if l == nil {
		return nil, apperrors.NotFound("landlord %s not found", landlordID)
	}
	return l, nil
}

func (s *LandlordService) UpdateProfile(ctx context.Context, landlordID string, up LandlordProfileUpdate) (*models.Landlord, error) {
	l, err := s.GetProfile(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	if up.Name != nil {
		l.Name = *up.Name
	}
	if up.Phone != nil {
		l.Phone = *up.Phone
	}
	if up.Description != nil {
		l.Description = *up.Description
	}

	var groups []media.Group
	if up.Avatar != nil || up.RemoveAvatar {
		s.coord.Delete(ctx, l.AvatarURL)
		l.AvatarURL = ""
	}
	if up.Avatar != nil {
		groups = append(groups, media.Group{
			Folder: storage.FolderAvatars,
			Files:  []storage.File{media.ShrinkAvatar(*up.Avatar)},
		})
	}

	l.UpdatedAt = s.now()
	_, err = s.coord.Run(ctx, groups, func(ctx context.Context, urls map[string][]string) error {
		if avatars := urls[storage.FolderAvatars]; len(avatars) > 0 {
			l.AvatarURL = avatars[0]
		}
		if err := s.landlords.Update(ctx, l); err != nil {
			return apperrors.Upstream(err, "updating landlord %s", landlordID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// CreateRoom uploads every media group, then persists the listing as
// published. Any failure rolls back all uploads of this call and no room
// is created.
func (s *LandlordService) CreateRoom(ctx context.Context, landlordID string, in RoomInput) (*models.Room, error) {
	if in.Title == "" {
		return nil, apperrors.InvalidArgument("title is required")
	}
	if in.RentPricePerMonth <= 0 {
		return nil, apperrors.InvalidArgument("rentPricePerMonth must be positive")
	}
	if _, err := s.GetProfile(ctx, landlordID); err != nil {
		return nil, err
	}

	now := s.now()
	room := &models.Room{
		ID:                uuid.NewString(),
		LandlordID:        landlordID,
		Title:             in.Title,
		Description:       in.Description,
		RentPricePerMonth: in.RentPricePerMonth,
		MinimumStayMonths: in.MinimumStayMonths,
		Address:           in.Address,
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		NumberOfToilets:   in.NumberOfToilets,
		NumberOfBedRooms:  in.NumberOfBedRooms,
		HasWindow:         in.HasWindow,
		Status:            models.RoomPublished,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	groups := mediaGroups(in.Thumbnail, in.Images, in.Videos, in.Documents)
	_, err := s.coord.Run(ctx, groups, func(ctx context.Context, urls map[string][]string) error {
		if thumbs := urls[storage.FolderThumbnails]; len(thumbs) > 0 {
			room.ThumbnailURL = thumbs[0]
		}
		room.ImageURLs = urls[storage.FolderImages]
		room.VideoURLs = urls[storage.FolderVideos]
		room.DocumentURLs = urls[storage.FolderDocuments]
		if err := s.rooms.Create(ctx, room); err != nil {
			return apperrors.Upstream(err, "creating room")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("room created", "room", room.ID, "landlord", landlordID)
	return room, nil
}

func (s *LandlordService) UpdateRoom(ctx context.Context, landlordID, roomID string, up RoomUpdate) (*models.Room, error) {
	room, err := s.ownedRoom(ctx, landlordID, roomID)
	if err != nil {
		return nil, err
	}
	if up.Title != nil {
		room.Title = *up.Title
	}
	if up.Description != nil {
		room.Description = *up.Description
	}
	if up.RentPricePerMonth != nil {
		room.RentPricePerMonth = *up.RentPricePerMonth
	}
	if up.MinimumStayMonths != nil {
		room.MinimumStayMonths = *up.MinimumStayMonths
	}
	if up.Address != nil {
		room.Address = *up.Address
	}
	if up.Latitude != nil {
		room.Latitude = *up.Latitude
	}
	if up.Longitude != nil {
		room.Longitude = *up.Longitude
	}
	if up.NumberOfToilets != nil {
		room.NumberOfToilets = *up.NumberOfToilets
	}
	if up.NumberOfBedRooms != nil {
		room.NumberOfBedRooms = *up.NumberOfBedRooms
	}
	if up.HasWindow != nil {
		room.HasWindow = *up.HasWindow
	}
	if up.Status != nil {
		room.Status = *up.Status
	}
	room.UpdatedAt = s.now()
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, apperrors.Upstream(err, "updating room %s", roomID)
	}
	return room, nil
}

// AddRoomMedia appends media to an existing listing. Only files uploaded
// by this call are rolled back on failure; media already on the room is
// never touched by the rollback. A thumbnail is rejected while one exists
// unless ReplaceThumbnail is set, which deletes the old file first.
func (s *LandlordService) AddRoomMedia(ctx context.Context, landlordID, roomID string, in RoomMediaInput) (*models.Room, error) {
	room, err := s.ownedRoom(ctx, landlordID, roomID)
	if err != nil {
		return nil, err
	}
	if in.Thumbnail != nil && room.ThumbnailURL != "" {
		if !in.ReplaceThumbnail {
			return nil, apperrors.Conflict("room %s already has a thumbnail", roomID)
		}
		s.coord.Delete(ctx, room.ThumbnailURL)
		room.ThumbnailURL = ""
	}

	groups := mediaGroups(in.Thumbnail, in.Images, in.Videos, in.Documents)
	room.UpdatedAt = s.now()
	_, err = s.coord.Run(ctx, groups, func(ctx context.Context, urls map[string][]string) error {
		if thumbs := urls[storage.FolderThumbnails]; len(thumbs) > 0 {
			room.ThumbnailURL = thumbs[0]
		}
		room.ImageURLs = append(room.ImageURLs, urls[storage.FolderImages]...)
		room.VideoURLs = append(room.VideoURLs, urls[storage.FolderVideos]...)
		room.DocumentURLs = append(room.DocumentURLs, urls[storage.FolderDocuments]...)
		if err := s.rooms.Update(ctx, room); err != nil {
			return apperrors.Upstream(err, "updating room %s", roomID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteThumbnail removes the room's thumbnail. Deleting a room without a
// thumbnail is a no-op.
func (s *LandlordService) DeleteThumbnail(ctx context.Context, landlordID, roomID string) (*models.Room, error) {
	room, err := s.ownedRoom(ctx, landlordID, roomID)
	if err != nil {
		return nil, err
	}
	if room.ThumbnailURL == "" {
		return room, nil
	}
	s.coord.Delete(ctx, room.ThumbnailURL)
	room.ThumbnailURL = ""
	room.UpdatedAt = s.now()
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, apperrors.Upstream(err, "updating room %s", roomID)
	}
	return room, nil
}

func (s *LandlordService) DeleteImages(ctx context.Context, landlordID, roomID string, urls []string) (*models.Room, error) {
	return s.deleteFromList(ctx, landlordID, roomID, urls, func(r *models.Room) *[]string { return &r.ImageURLs })
}

func (s *LandlordService) DeleteVideos(ctx context.Context, landlordID, roomID string, urls []string) (*models.Room, error) {
	return s.deleteFromList(ctx, landlordID, roomID, urls, func(r *models.Room) *[]string { return &r.VideoURLs })
}

func (s *LandlordService) DeleteDocuments(ctx context.Context, landlordID, roomID string, urls []string) (*models.Room, error) {
	return s.deleteFromList(ctx, landlordID, roomID, urls, func(r *models.Room) *[]string { return &r.DocumentURLs })
}

// deleteFromList removes the given urls from one media list. Only urls
// actually on the room are deleted from storage, so asking twice for the
// same url is harmless, and urls belonging to other rooms are ignored.
func (s *LandlordService) deleteFromList(
	ctx context.Context,
	landlordID, roomID string,
	urls []string,
	list func(*models.Room) *[]string,
) (*models.Room, error) {
	room, err := s.ownedRoom(ctx, landlordID, roomID)
	if err != nil {
		return nil, err
	}
	target := list(room)
	requested := make(map[string]bool, len(urls))
	for _, u := range urls {
		requested[u] = true
	}
	kept := (*target)[:0]
	removed := 0
	for _, u := range *target {
		if requested[u] {
			s.coord.Delete(ctx, u)
			removed++
			continue
		}
		kept = append(kept, u)
	}
	if removed == 0 {
		return room, nil
	}
	*target = kept
	room.UpdatedAt = s.now()
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, apperrors.Upstream(err, "updating room %s", roomID)
	}
	return room, nil
}

// DeleteRoom removes the listing and best-effort deletes all of its media.
func (s *LandlordService) DeleteRoom(ctx context.Context, landlordID, roomID string) error {
	room, err := s.ownedRoom(ctx, landlordID, roomID)
	if err != nil {
		return err
	}
	if err := s.rooms.Delete(ctx, roomID); err != nil {
		return apperrors.Upstream(err, "deleting room %s", roomID)
	}
	s.coord.Delete(ctx, room.ThumbnailURL)
	for _, u := range room.ImageURLs {
		s.coord.Delete(ctx, u)
	}
	for _, u := range room.VideoURLs {
		s.coord.Delete(ctx, u)
	}
	for _, u := range room.DocumentURLs {
		s.coord.Delete(ctx, u)
	}
	s.log.Infow("room deleted", "room", roomID, "landlord", landlordID)
	return nil
}

func (s *LandlordService) ownedRoom(ctx context.Context, landlordID, roomID string) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, apperrors.Upstream(err, "loading room %s", roomID)
	}
	if room == nil {
		return nil, apperrors.NotFound("room %s not found", roomID)
	}
	if room.LandlordID != landlordID {
		return nil, apperrors.Forbidden("room %s belongs to another landlord", roomID)
	}
	return room, nil
}

func mediaGroups(thumbnail *storage.File, images, videos, documents []storage.File) []media.Group {
	var groups []media.Group
	if thumbnail != nil {
		groups = append(groups, media.Group{Folder: storage.FolderThumbnails, Files: []storage.File{*thumbnail}})
	}
	if len(images) > 0 {
		groups = append(groups, media.Group{Folder: storage.FolderImages, Files: images})
	}
	if len(videos) > 0 {
		groups = append(groups, media.Group{Folder: storage.FolderVideos, Files: videos})
	}
	if len(documents) > 0 {
		groups = append(groups, media.Group{Folder: storage.FolderDocuments, Files: documents})
	}
	return groups
}
