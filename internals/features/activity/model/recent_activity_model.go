// file: internals/features/activity/model/recent_activity_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ActivityTypeAssignmentCreated = "assignment_created"
	ActivityTypeSubmissionGraded  = "submission_graded"
	ActivityTypeMaterialUploaded  = "material_uploaded"
	ActivityTypeDoubtAnswered     = "doubt_answered"
	ActivityTypeStudentJoined     = "student_joined"
)

// RecentActivityModel maps the append-only `recent_activities` table that
// feeds the teacher dashboard. Rows are never updated.
type RecentActivityModel struct {
	ActivityID uuid.UUID `json:"activity_id" gorm:"column:activity_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ActivityTeacherID uuid.UUID `json:"activity_teacher_id" gorm:"column:activity_teacher_id;type:uuid;not null;index"`

	ActivityType      string     `json:"activity_type" gorm:"column:activity_type;type:varchar(40);not null"`
	ActivityTitle     string     `json:"activity_title" gorm:"column:activity_title;size:255;not null"`
	ActivityRelatedID *uuid.UUID `json:"activity_related_id,omitempty" gorm:"column:activity_related_id;type:uuid"`

	ActivityMetadata datatypes.JSON `json:"activity_metadata,omitempty" gorm:"column:activity_metadata;type:jsonb"`

	ActivityCreatedAt time.Time `json:"activity_created_at" gorm:"column:activity_created_at;not null;autoCreateTime;index"`
}

func (RecentActivityModel) TableName() string {
	return "recent_activities"
}
