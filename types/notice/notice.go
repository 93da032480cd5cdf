package notice

import (
	"fmt"
	"strings"
	"time"

	noticeModel "hostel-booking/models/notice"
)

type SendNoticeRequest struct {
	HostelID  uint       `json:"hostel_id" validate:"required"`
	Title     string     `json:"title" validate:"required,max=200"`
	Message   string     `json:"message" validate:"required"`
	Priority  string     `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (r *SendNoticeRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Message = strings.TrimSpace(r.Message)
	if r.HostelID == 0 {
		return fmt.Errorf("hostel_id is required")
	}
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Message == "" {
		return fmt.Errorf("message is required")
	}
	if r.Priority != "" && !noticeModel.Priority(r.Priority).IsValid() {
		return fmt.Errorf("priority must be LOW, NORMAL or HIGH")
	}
	return nil
}

// PriorityOrDefault returns the requested priority, defaulting to NORMAL.
func (r *SendNoticeRequest) PriorityOrDefault() noticeModel.Priority {
	if r.Priority == "" {
		return noticeModel.PriorityNormal
	}
	return noticeModel.Priority(r.Priority)
}
