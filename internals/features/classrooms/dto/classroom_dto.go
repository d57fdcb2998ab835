// file: internals/features/classrooms/dto/classroom_dto.go
package dto

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	classModel "classku_backend/internals/features/classrooms/model"
)

/* =========================
   Requests
========================= */

type CreateClassroomRequest struct {
	ClassroomName        string  `json:"classroom_name" validate:"required,min=1,max=150"`
	ClassroomSubject     *string `json:"classroom_subject,omitempty" validate:"omitempty,max=100"`
	ClassroomDescription *string `json:"classroom_description,omitempty" validate:"omitempty,max=2000"`
}

type UpdateClassroomRequest struct {
	ClassroomName        *string `json:"classroom_name,omitempty" validate:"omitempty,min=1,max=150"`
	ClassroomSubject     *string `json:"classroom_subject,omitempty" validate:"omitempty,max=100"`
	ClassroomDescription *string `json:"classroom_description,omitempty" validate:"omitempty,max=2000"`

	AllowStudentDoubts *bool `json:"allow_student_doubts,omitempty"`
	IsArchived         *bool `json:"is_archived,omitempty"`
}

type JoinClassroomRequest struct {
	ClassroomCode string `json:"classroom_code" validate:"required,min=6,max=16"`
}

/* =========================
   Responses
========================= */

type ClassroomResponse struct {
	ClassroomID          uuid.UUID `json:"classroom_id"`
	ClassroomTeacherID   uuid.UUID `json:"classroom_teacher_id"`
	ClassroomName        string    `json:"classroom_name"`
	ClassroomSubject     *string   `json:"classroom_subject,omitempty"`
	ClassroomDescription *string   `json:"classroom_description,omitempty"`
	ClassroomCode        string    `json:"classroom_code"`

	ClassroomSettings classModel.ClassroomSettingsData `json:"classroom_settings"`

	StudentCount    int64 `json:"student_count"`
	AssignmentCount int64 `json:"assignment_count"`

	ClassroomCreatedAt time.Time `json:"classroom_created_at"`
	ClassroomUpdatedAt time.Time `json:"classroom_updated_at"`
}

func NewClassroomResponse(m *classModel.ClassroomModel, studentCount, assignmentCount int64) ClassroomResponse {
	return ClassroomResponse{
		ClassroomID:          m.ClassroomID,
		ClassroomTeacherID:   m.ClassroomTeacherID,
		ClassroomName:        m.ClassroomName,
		ClassroomSubject:     m.ClassroomSubject,
		ClassroomDescription: m.ClassroomDescription,
		ClassroomCode:        m.ClassroomCode,
		ClassroomSettings:    DecodeSettings(m.ClassroomSettings),
		StudentCount:         studentCount,
		AssignmentCount:      assignmentCount,
		ClassroomCreatedAt:   m.ClassroomCreatedAt,
		ClassroomUpdatedAt:   m.ClassroomUpdatedAt,
	}
}

// RosterEntry is one student row in the classroom detail view.
type RosterEntry struct {
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	RollNumber   *string   `json:"user_roll_number,omitempty"`
	AverageScore int       `json:"average_score"`
	JoinedAt     time.Time `json:"joined_at"`
}

type ClassroomDetailResponse struct {
	ClassroomResponse
	Roster []RosterEntry `json:"roster"`
}

// ClassroomStatsResponse is a per-classroom rollup for the owning teacher.
type ClassroomStatsResponse struct {
	ClassroomID     uuid.UUID    `json:"classroom_id"`
	StudentCount    int64        `json:"student_count"`
	AssignmentCount int64        `json:"assignment_count"`
	SubmissionRate  float64      `json:"submission_rate"`
	StudentAverages []StudentAvg `json:"student_averages"`
}

type StudentAvg struct {
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	AverageScore int       `json:"average_score"`
}

/* =========================
   Settings codec
========================= */

func DecodeSettings(raw datatypes.JSON) classModel.ClassroomSettingsData {
	settings := classModel.DefaultClassroomSettings()
	if len(raw) > 0 {
		_ = sonic.Unmarshal(raw, &settings)
	}
	return settings
}

func EncodeSettings(s classModel.ClassroomSettingsData) datatypes.JSON {
	b, err := sonic.Marshal(s)
	if err != nil {
		return datatypes.JSON([]byte(`{}`))
	}
	return datatypes.JSON(b)
}
