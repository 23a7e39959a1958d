package dto

import (
	"mime/multipart"

	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomTypeID int                   `json:"room_type_id" validate:"required,min=1"`
	RoomNumber int                   `json:"room_number"  validate:"required,min=1,max=9999"`
	Image      *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile  multipart.File        `json:"-"`
}

// ToModel builds a new room. New rooms always start out free.
func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	now := timezone.Now()

	return model.Room{
		ID:         uuid.NewString(),
		RoomTypeID: c.RoomTypeID,
		RoomNumber: c.RoomNumber,
		Status:     model.StatusNotReserved,
		Image:      imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateRoomRequest carries the editable room fields. Status is owned by bookings.
type UpdateRoomRequest struct {
	RoomTypeID *int                  `db:"room_type_id" json:"room_type_id" validate:"omitempty,min=1"`
	RoomNumber *int                  `db:"room_number"  json:"room_number"  validate:"omitempty,min=1,max=9999"`
	Image      *multipart.FileHeader `json:"image"      validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile  multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID         string `json:"id"`
	RoomTypeID int    `json:"room_type_id"`
	RoomType   string `json:"room_type"`
	RoomNumber int    `json:"room_number"`
	Status     string `json:"status"`
	Image      string `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomTypeID = model.RoomTypeID
	r.RoomType = model.RoomTypeName
	r.RoomNumber = model.RoomNumber
	r.Status = model.Status
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Room) []RoomResponse {
	rooms := make([]RoomResponse, len(models))
	for i, mod := range models {
		rooms[i].FromModel(mod)
	}

	return rooms
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Rooms = FromModels(models)
}
