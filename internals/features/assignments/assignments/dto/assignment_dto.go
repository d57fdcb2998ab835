// file: internals/features/assignments/assignments/dto/assignment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	assignModel "classku_backend/internals/features/assignments/assignments/model"
	assignService "classku_backend/internals/features/assignments/assignments/service"
)

/* =========================
   Requests
========================= */

// CreateAssignmentRequest arrives as multipart form values; attachments are
// picked up separately from the form files.
type CreateAssignmentRequest struct {
	AssignmentClassroomID  string  `form:"assignment_classroom_id" json:"assignment_classroom_id" validate:"required,uuid4"`
	AssignmentTitle        string  `form:"assignment_title" json:"assignment_title" validate:"required,min=1,max=200"`
	AssignmentInstructions *string `form:"assignment_instructions" json:"assignment_instructions,omitempty" validate:"omitempty,max=10000"`
	AssignmentDueAt        string  `form:"assignment_due_at" json:"assignment_due_at" validate:"required"`
	AssignmentTotalPoints  float64 `form:"assignment_total_points" json:"assignment_total_points" validate:"required,gt=0"`

	// optional quiz payload, raw JSON string in the form
	AssignmentQuestions *string `form:"assignment_questions" json:"assignment_questions,omitempty"`
}

type UpdateAssignmentRequest struct {
	AssignmentTitle        *string  `json:"assignment_title,omitempty" validate:"omitempty,min=1,max=200"`
	AssignmentInstructions *string  `json:"assignment_instructions,omitempty" validate:"omitempty,max=10000"`
	AssignmentDueAt        *string  `json:"assignment_due_at,omitempty"`
	AssignmentTotalPoints  *float64 `json:"assignment_total_points,omitempty" validate:"omitempty,gt=0"`
	AssignmentQuestions    *string  `json:"assignment_questions,omitempty"`
}

/* =========================
   Responses
========================= */

type AssignmentResponse struct {
	AssignmentID          uuid.UUID `json:"assignment_id"`
	AssignmentTeacherID   uuid.UUID `json:"assignment_teacher_id"`
	AssignmentClassroomID uuid.UUID `json:"assignment_classroom_id"`

	AssignmentTitle        string  `json:"assignment_title"`
	AssignmentInstructions *string `json:"assignment_instructions,omitempty"`

	AssignmentDueAt       time.Time `json:"assignment_due_at"`
	AssignmentTotalPoints float64   `json:"assignment_total_points"`

	AssignmentQuestions      datatypes.JSON `json:"assignment_questions,omitempty"`
	AssignmentAttachmentURLs []string       `json:"assignment_attachment_urls"`

	Counts *assignService.DerivedCounts `json:"counts,omitempty"`

	AssignmentCreatedAt time.Time `json:"assignment_created_at"`
	AssignmentUpdatedAt time.Time `json:"assignment_updated_at"`
}

func NewAssignmentResponse(m *assignModel.AssignmentModel, counts *assignService.DerivedCounts) AssignmentResponse {
	urls := make([]string, 0, len(m.AssignmentAttachmentURLs))
	urls = append(urls, m.AssignmentAttachmentURLs...)

	return AssignmentResponse{
		AssignmentID:             m.AssignmentID,
		AssignmentTeacherID:      m.AssignmentTeacherID,
		AssignmentClassroomID:    m.AssignmentClassroomID,
		AssignmentTitle:          m.AssignmentTitle,
		AssignmentInstructions:   m.AssignmentInstructions,
		AssignmentDueAt:          m.AssignmentDueAt,
		AssignmentTotalPoints:    m.AssignmentTotalPoints,
		AssignmentQuestions:      m.AssignmentQuestions,
		AssignmentAttachmentURLs: urls,
		Counts:                   counts,
		AssignmentCreatedAt:      m.AssignmentCreatedAt,
		AssignmentUpdatedAt:      m.AssignmentUpdatedAt,
	}
}

// StudentAssignmentItem is the student list view with the read-time status.
type StudentAssignmentItem struct {
	AssignmentResponse
	SubmissionStatus string     `json:"submission_status"` // pending|submitted|graded|late
	SubmissionID     *uuid.UUID `json:"submission_id,omitempty"`
	SubmissionScore  *float64   `json:"submission_score,omitempty"`
}
