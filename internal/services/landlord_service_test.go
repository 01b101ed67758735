package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

func mp4Upload(name string) storage.File {
	return storage.File{Name: name, ContentType: "video/mp4", Data: []byte("mp4-bytes")}
}

func pdfUpload(name string) storage.File {
	return storage.File{Name: name, ContentType: "application/pdf", Data: []byte("pdf-bytes")}
}

func TestCreateRoomWithAllMedia(t *testing.T) {
	f := newFixture(t)
	svc := f.landlordService()
	ctx := context.Background()
	l := f.addLandlord(t, "leo")

	room, err := svc.CreateRoom(ctx, l.ID, RoomInput{
		Title:             "Sunny studio",
		RentPricePerMonth: 800,
		Address:           "12 Nguyen Hue",
		Thumbnail:         pngUpload("thumb.png"),
		Images:            []storage.File{*pngUpload("a.png"), *pngUpload("b.png")},
		Videos:            []storage.File{mp4Upload("tour.mp4")},
		Documents:         []storage.File{pdfUpload("contract.pdf")},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoomPublished, room.Status)
	assert.NotEmpty(t, room.ThumbnailURL)
	assert.Len(t, room.ImageURLs, 2)
	assert.Len(t, room.VideoURLs, 1)
	assert.Len(t, room.DocumentURLs, 1)
	assert.Equal(t, 5, f.blobs.Len())
}

func TestCreateRoomRollsBackAllUploadsOnPersistFailure(t *testing.T) {
	f := newFixture(t)
	svc := f.landlordService()
	l := f.addLandlord(t, "leo")

	f.store.RoomCreateErr = assert.AnError
	_, err := svc.CreateRoom(context.Background(), l.ID, RoomInput{
		Title:             "Sunny studio",
		RentPricePerMonth: 800,
		Thumbnail:         pngUpload("thumb.png"),
		Images:            []storage.File{*pngUpload("a.png")},
	})
	require.Error(t, err)
	assert.Equal(t, 0, f.blobs.Len(), "every upload of the failed create is removed")
}

func TestCreateRoomValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.landlordService()
	ctx := context.Background()
	l := f.addLandlord(t, "leo")

	_, err := svc.CreateRoom(ctx, l.ID, RoomInput{RentPricePerMonth: 800})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))

	_, err = svc.CreateRoom(ctx, l.ID, RoomInput{Title: "x", RentPricePerMonth: 0})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))

	_, err = svc.CreateRoom(ctx, "ghost", RoomInput{Title: "x", RentPricePerMonth: 800})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateRoomOwnership(t *testing.T) {
	f := newFixture(t)
	svc := f.landlordService()
	ctx := context.Background()
	owner := f.addLandlord(t, "leo")
	other := f.addLandlord(t, "mia")
	room := f.addRoom(t, owner.ID, "Sunny studio")

	price := int64(950)
	got, err := svc.UpdateRoom(ctx, owner.ID, room.ID, RoomUpdate{RentPricePerMonth: &price})
	require.NoError(t, err)
	assert.EqualValues(t, 950, got.RentPricePerMonth)

	_, err = svc.UpdateRoom(ctx, other.ID, room.ID, RoomUpdate{RentPricePerMonth: &price})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestAddRoomMediaAppends(t *testing.T) {
	f := newFixture(t)
	svc := f.landlordService()
	ctx := context.Background()
	l := f.addLandlord(t, "leo")
	room, err := svc.CreateRoom(ctx, l.ID, RoomInput{
		Title:             "Sunny studio",
		RentPricePerMonth: 800,
		Images:            []storage.File{*pngUpload("a.png")},
	})
	require.NoError(t, err)

	got, err := svc.AddRoomMedia(ctx, l.ID, room.ID, RoomMediaInput{
		Thumbnail: pngUpload("thumb.png"),
		Images:    []storage.File{*pngUpload("b.png")},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ThumbnailURL)
	assert.Len(t, got.ImageURLs, 2)
	assert.Equal(t, room.ImageURLs[0], got.ImageURLs[0], "existing media stays in place")
}

func TestAddRoomMediaThumbnailConflict(t *testing.T) {
	f := newFixture(t)
	svc := f.landlordService()
	ctx := context.Background()
	l := f.addLandlord(t, "leo")
	room, err := svc.CreateRoom(ctx, l.ID, RoomInput{
		Title:             "Sunny studio",
		RentPricePerMonth: 800,
		Thumbnail:         pngUpload("thumb.png"),
	})
	require.NoError(t, err)
	oldThumb := room.ThumbnailURL

	_, err = svc.AddRoomMedia(ctx, l.ID, room.ID, RoomMediaInput{Thumbnail: pngUpload("new.png")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	got, err := svc.AddRoomMedia(ctx, l.ID, room.ID, RoomMediaInput{
		Thumbnail:        pngUpload("new.png"),
		ReplaceThumbnail: true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldThumb, got.ThumbnailURL)
	assert.False(t, f.blobs.Has(oldThumb), "the replaced thumbnail is deleted")
}

func TestAddRoomMediaRollsBackOnlyThisCall(t *testing.T) {
	f := newFixture(t)
	svc := f.landlordService()
	ctx := context.Background()
	l := f.addLandlord(t, "leo")
	room, err := svc.CreateRoom(ctx, l.ID, RoomInput{
		Title:             "Sunny studio",
		RentPricePerMonth: 800,
		Images:            []storage.File{*pngUpload("a.png")},
	})
	require.NoError(t, err)

	f.store.RoomUpdateErr = assert.AnError
	_, err = svc.AddRoomMedia(ctx, l.ID, room.ID, RoomMediaInput{Images: []storage.File{*pngUpload("b.png")}})
	require.Error(t, err)
	assert.Equal(t, 1, f.blobs.Len(), "only the failed call's upload is rolled back")
	assert.True(t, f.blobs.Has(room.ImageURLs[0]))
}

func TestDeleteImagesIsIdempotentAndScoped(t *testing.T) {
	f := newFixture(t)
	svc := f.landlordService()
	ctx := context.Background()
	l := f.addLandlord(t, "leo")
	room, err := svc.CreateRoom(ctx, l.ID, RoomInput{
		Title:             "Sunny studio",
		RentPricePerMonth: 800,
		Images:            []storage.File{*pngUpload("a.png"), *pngUpload("b.png")},
	})
	require.NoError(t, err)
	victim := room.ImageURLs[0]

	got, err := svc.DeleteImages(ctx, l.ID, room.ID, []string{victim, "https://blobs.test/images/not-on-room.png"})
	require.NoError(t, err)
	assert.Len(t, got.ImageURLs, 1)
	assert.False(t, f.blobs.Has(victim))

	// asking again for the same url changes nothing
	got, err = svc.DeleteImages(ctx, l.ID, room.ID, []string{victim})
	require.NoError(t, err)
	assert.Len(t, got.ImageURLs, 1)
}

func TestDeleteThumbnailNoopWhenMissing(t *testing.T) {
	f := newFixture(t)
	svc := f.landlordService()
	ctx := context.Background()
	l := f.addLandlord(t, "leo")
	room := f.addRoom(t, l.ID, "Sunny studio")

	got, err := svc.DeleteThumbnail(ctx, l.ID, room.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ThumbnailURL)
}

func TestDeleteRoomRemovesMedia(t *testing.T) {
	f := newFixture(t)
	svc := f.landlordService()
	ctx := context.Background()
	l := f.addLandlord(t, "leo")
	room, err := svc.CreateRoom(ctx, l.ID, RoomInput{
		Title:             "Sunny studio",
		RentPricePerMonth: 800,
		Thumbnail:         pngUpload("thumb.png"),
		Images:            []storage.File{*pngUpload("a.png")},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRoom(ctx, l.ID, room.ID))
	assert.Equal(t, 0, f.blobs.Len())

	_, err = NewRoomService(f.store.Rooms()).Get(ctx, room.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
