// file: internals/features/classrooms/model/classroom_student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassroomStudentModel maps the `classroom_students` join table.
// One row per enrollment, unique per (classroom_id, student_id).
type ClassroomStudentModel struct {
	ClassroomStudentID uuid.UUID `json:"classroom_student_id" gorm:"column:classroom_student_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ClassroomStudentClassroomID uuid.UUID `json:"classroom_student_classroom_id" gorm:"column:classroom_student_classroom_id;type:uuid;not null;uniqueIndex:uq_classroom_student"`
	ClassroomStudentStudentID   uuid.UUID `json:"classroom_student_student_id" gorm:"column:classroom_student_student_id;type:uuid;not null;uniqueIndex:uq_classroom_student;index"`

	ClassroomStudentJoinedAt time.Time `json:"classroom_student_joined_at" gorm:"column:classroom_student_joined_at;not null;autoCreateTime"`
}

func (ClassroomStudentModel) TableName() string {
	return "classroom_students"
}
