package hostel

import (
	"fmt"
	"strings"
)

// ImagePayload carries either an already uploaded URL or an inline data URI
// that the media service persists before the hostel is saved.
type ImagePayload struct {
	ImageURL  string `json:"image_url"`
	Data      string `json:"data"` // data:image/...;base64,...
	Caption   string `json:"caption"`
	IsPrimary bool   `json:"is_primary"`
	Order     int    `json:"order"`
}

type CreateHostelRequest struct {
	Name             string         `json:"name" validate:"required,min=1,max=150"`
	Location         string         `json:"location" validate:"required,min=1,max=200"`
	Description      string         `json:"description"`
	TotalRooms       int            `json:"total_rooms" validate:"required,min=1"`
	PricePerMonth    float64        `json:"price_per_month" validate:"required,min=0"`
	PricePerSemester float64        `json:"price_per_semester" validate:"omitempty,min=0"`
	Amenities        string         `json:"amenities"`
	Images           []ImagePayload `json:"images"`
}

func (r *CreateHostelRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)
	if r.Name == "" || r.Location == "" {
		return fmt.Errorf("required fields: name, location, total_rooms, price_per_month")
	}
	if r.TotalRooms < 1 {
		return fmt.Errorf("total_rooms must be at least 1")
	}
	if r.PricePerMonth < 0 || r.PricePerSemester < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	return nil
}

// UpdateHostelRequest replaces only the fields that are present.
type UpdateHostelRequest struct {
	Name          *string  `json:"name"`
	Location      *string  `json:"location"`
	Description   *string  `json:"description"`
	PricePerMonth *float64 `json:"price_per_month"`
	Amenities     *string  `json:"amenities"`
}

func (r *UpdateHostelRequest) Validate() error {
	if r.PricePerMonth != nil && *r.PricePerMonth < 0 {
		return fmt.Errorf("price_per_month must not be negative")
	}
	return nil
}
