// file: internals/features/assignments/submissions/dto/submission_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	subModel "classku_backend/internals/features/assignments/submissions/model"
)

/* =========================
   Requests
========================= */

// SubmitRequest arrives as multipart form values; files under "attachments".
type SubmitRequest struct {
	SubmissionAssignmentID string  `form:"submission_assignment_id" json:"submission_assignment_id" validate:"required,uuid4"`
	SubmissionContent      *string `form:"submission_content" json:"submission_content,omitempty" validate:"omitempty,max=50000"`
}

type GradeRequest struct {
	SubmissionScore    float64 `json:"submission_score" validate:"gte=0"`
	SubmissionFeedback *string `json:"submission_feedback,omitempty" validate:"omitempty,max=10000"`
}

/* =========================
   Responses
========================= */

type SubmissionResponse struct {
	SubmissionID           uuid.UUID `json:"submission_id"`
	SubmissionAssignmentID uuid.UUID `json:"submission_assignment_id"`
	SubmissionStudentID    uuid.UUID `json:"submission_student_id"`

	SubmissionContent        *string  `json:"submission_content,omitempty"`
	SubmissionAttachmentURLs []string `json:"submission_attachment_urls"`

	SubmissionStatus   string     `json:"submission_status"`
	SubmissionIsLate   bool       `json:"submission_is_late"`
	SubmissionScore    *float64   `json:"submission_score,omitempty"`
	SubmissionFeedback *string    `json:"submission_feedback,omitempty"`
	SubmissionGradedAt *time.Time `json:"submission_graded_at,omitempty"`
	SubmissionGradedBy *uuid.UUID `json:"submission_graded_by,omitempty"`

	SubmissionSubmittedAt time.Time `json:"submission_submitted_at"`

	// populated on the teacher's grading list
	StudentName *string `json:"student_name,omitempty"`
}

func NewSubmissionResponse(m *subModel.SubmissionModel, isLate bool) SubmissionResponse {
	urls := make([]string, 0, len(m.SubmissionAttachmentURLs))
	urls = append(urls, m.SubmissionAttachmentURLs...)

	return SubmissionResponse{
		SubmissionID:             m.SubmissionID,
		SubmissionAssignmentID:   m.SubmissionAssignmentID,
		SubmissionStudentID:      m.SubmissionStudentID,
		SubmissionContent:        m.SubmissionContent,
		SubmissionAttachmentURLs: urls,
		SubmissionStatus:         m.SubmissionStatus,
		SubmissionIsLate:         isLate,
		SubmissionScore:          m.SubmissionScore,
		SubmissionFeedback:       m.SubmissionFeedback,
		SubmissionGradedAt:       m.SubmissionGradedAt,
		SubmissionGradedBy:       m.SubmissionGradedBy,
		SubmissionSubmittedAt:    m.SubmissionSubmittedAt,
	}
}
