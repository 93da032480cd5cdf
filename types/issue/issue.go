package issue

import (
	"fmt"
	"strings"

	issueModel "hostel-booking/models/issue"
)

type ReportIssueRequest struct {
	HostelID    uint   `json:"hostel_id" validate:"required"`
	BookingID   *uint  `json:"booking_id"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Attachment  string `json:"attachment"`
}

func (r *ReportIssueRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.HostelID == 0 {
		return fmt.Errorf("hostel_id is required")
	}
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Description == "" {
		return fmt.Errorf("description is required")
	}
	if r.Priority != "" && !issueModel.Priority(r.Priority).IsValid() {
		return fmt.Errorf("priority must be LOW, MEDIUM or HIGH")
	}
	return nil
}

// PriorityOrDefault returns the requested priority, defaulting to MEDIUM.
func (r *ReportIssueRequest) PriorityOrDefault() issueModel.Priority {
	if r.Priority == "" {
		return issueModel.PriorityMedium
	}
	return issueModel.Priority(r.Priority)
}

type ResolveIssueRequest struct {
	Notes string `json:"notes"`
}
