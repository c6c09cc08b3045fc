package request

type CreateBookingRequest struct {
	RoomID   string `json:"room_id" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	MemberID string `json:"member_id" validate:"required,min=3"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=255"`
}

type SearchRoomsRequest struct {
	RoomType string `json:"room_type" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
}
