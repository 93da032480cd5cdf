package hostel

import (
	"time"
)

// HostelImage stores the URL and metadata of an externally persisted image.
// The file itself lives under the static media directory; only the URL is
// kept here.
type HostelImage struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	HostelID uint `gorm:"not null;index" json:"hostel_id"`

	ImageURL  string `gorm:"type:varchar(2048);not null" json:"image_url"`
	Caption   string `gorm:"type:varchar(255)" json:"caption"`
	IsPrimary bool   `gorm:"default:false" json:"is_primary"`
	SortOrder int    `gorm:"default:0" json:"order"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// TableName sets the table name for the HostelImage model.
func (HostelImage) TableName() string {
	return "hostel_images"
}
