// file: internals/features/activity/service/activity_service.go
package service

import (
	"log"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	activityModel "classku_backend/internals/features/activity/model"
)

// LogActivity appends one feed row. It never propagates its error: a broken
// activity log must not fail the grading or creation path that triggered it.
func LogActivity(db *gorm.DB, teacherID uuid.UUID, activityType, title string, relatedID *uuid.UUID, metadata map[string]interface{}) {
	row := activityModel.RecentActivityModel{
		ActivityTeacherID: teacherID,
		ActivityType:      activityType,
		ActivityTitle:     title,
		ActivityRelatedID: relatedID,
	}
	if len(metadata) > 0 {
		if b, err := sonic.Marshal(metadata); err == nil {
			row.ActivityMetadata = datatypes.JSON(b)
		}
	}
	if err := db.Create(&row).Error; err != nil {
		log.Printf("[ACTIVITY] log failed teacher=%s type=%s err=%v", teacherID, activityType, err)
	}
}

// RecentForTeacher loads the newest feed rows for the dashboard.
func RecentForTeacher(db *gorm.DB, teacherID uuid.UUID, limit int) ([]activityModel.RecentActivityModel, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []activityModel.RecentActivityModel
	err := db.Where("activity_teacher_id = ?", teacherID).
		Order("activity_created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
