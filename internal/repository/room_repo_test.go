package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

func TestRoomRepository_GetByIDWithType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()
	room := seedRoom(t, db)

	got, err := repo.GetByIDWithType(ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, got.PricePerNight.Equal(decimal.NewFromInt(120)))
	assert.True(t, got.IsAvailable)
	require.NotNil(t, got.Hotel)
	assert.Equal(t, "测试酒店", got.Hotel.Name)
	assert.Equal(t, 2, got.MaxGuests())

	_, err = repo.GetByIDWithType(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRoomRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)
	hotels := NewHotelRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{Name: "海景酒店", City: "厦门", Address: "环岛路"}
	require.NoError(t, hotels.Create(ctx, hotel))
	suite := &models.RoomType{Name: "套房", MaxGuests: 4}
	require.NoError(t, repo.CreateType(ctx, suite))

	for _, no := range []string{"802", "801"} {
		require.NoError(t, repo.Create(ctx, &models.Room{
			HotelID:       hotel.ID,
			RoomTypeID:    suite.ID,
			RoomNo:        no,
			PricePerNight: decimal.RequireFromString("588.50"),
			IsAvailable:   true,
		}))
	}

	rooms, err := repo.ListByHotel(ctx, hotel.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "801", rooms[0].RoomNo)
	assert.Equal(t, 4, rooms[0].MaxGuests())
	assert.Equal(t, "588.5", rooms[0].PricePerNight.String())
}

func TestRoomRepository_SetAvailable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()
	room := seedRoom(t, db)

	require.NoError(t, repo.SetAvailable(ctx, room.ID, false))
	got, err := repo.GetByIDWithType(ctx, room.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)
}

func TestRoomRepository_GetForUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()
	room := seedRoom(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		got, err := repo.GetForUpdate(ctx, tx, room.ID)
		require.NoError(t, err)
		require.NotNil(t, got.RoomType)
		assert.Equal(t, 2, got.MaxGuests())

		_, err = repo.GetForUpdate(ctx, tx, 9999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestHotelRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{Name: "山景酒店", City: "杭州", Address: "西湖区"}
	require.NoError(t, repo.Create(ctx, hotel))

	got, err := repo.GetByID(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, int8(models.HotelStatusActive), got.Status)

	require.NoError(t, repo.UpdateStatus(ctx, hotel.ID, models.HotelStatusDisabled))
	got, err = repo.GetByID(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, int8(models.HotelStatusDisabled), got.Status)
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	phone := "13800000000"
	user := &models.User{Phone: &phone, Nickname: "旅客"}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Phone)
	assert.Equal(t, phone, *got.Phone)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBookingStatusRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingStatusRepository(db)

	statuses, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, len(models.BookingStatusCodes))
	for i := 1; i < len(statuses); i++ {
		assert.Less(t, statuses[i-1].Sort, statuses[i].Sort)
	}
}
