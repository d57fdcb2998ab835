// file: internals/features/users/user/model/user_model.go
package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/google/uuid"
)

// UserModel maps the `users` table. Teachers and students live in one table
// with a role tag; role-specific profile fields are nullable.
type UserModel struct {
	// =========================
	// Primary Key
	// =========================
	UserID uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// =========================
	// Account
	// =========================
	UserName     string `json:"user_name" gorm:"column:user_name;size:100;not null" validate:"required,min=3,max=100"`
	UserEmail    string `json:"user_email" gorm:"column:user_email;size:255;unique;not null" validate:"required,email"`
	UserPassword string `json:"-" gorm:"column:user_password;not null"`
	UserRole     string `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;index" validate:"required,oneof=teacher student"`
	UserIsActive bool   `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`

	// =========================
	// Profile
	// =========================
	UserAvatarURL       *string `json:"user_avatar_url" gorm:"column:user_avatar_url;type:text"`
	UserAvatarObjectKey *string `json:"-" gorm:"column:user_avatar_object_key;type:text"`
	UserBio             *string `json:"user_bio" gorm:"column:user_bio;type:text"`

	// teacher-only
	UserSubject    *string `json:"user_subject,omitempty" gorm:"column:user_subject;size:100"`
	UserGradeLevel *string `json:"user_grade_level,omitempty" gorm:"column:user_grade_level;size:50"`

	// student-only
	UserRollNumber *string `json:"user_roll_number,omitempty" gorm:"column:user_roll_number;size:50"`

	// =========================
	// Derived performance snapshot (recomputable cache, never source of truth)
	// =========================
	UserStatsCompletedAssignments int            `json:"user_stats_completed_assignments" gorm:"column:user_stats_completed_assignments;not null;default:0"`
	UserStatsAverageScore         int            `json:"user_stats_average_score" gorm:"column:user_stats_average_score;not null;default:0"`
	UserStatsTotalPoints          float64        `json:"user_stats_total_points" gorm:"column:user_stats_total_points;type:numeric(10,2);not null;default:0"`
	UserStatsRank                 int            `json:"user_stats_rank" gorm:"column:user_stats_rank;not null;default:0"`
	UserStreakDays                int            `json:"user_streak_days" gorm:"column:user_streak_days;not null;default:0"`
	UserLastActiveDate            *time.Time     `json:"user_last_active_date" gorm:"column:user_last_active_date;type:date"`
	UserBadges                    pq.StringArray `json:"user_badges" gorm:"column:user_badges;type:text[]"`

	// =========================
	// Timestamps
	// =========================
	UserCreatedAt time.Time      `json:"user_created_at" gorm:"column:user_created_at;not null;autoCreateTime"`
	UserUpdatedAt time.Time      `json:"user_updated_at" gorm:"column:user_updated_at;not null;autoUpdateTime"`
	UserDeletedAt gorm.DeletedAt `json:"user_deleted_at" gorm:"column:user_deleted_at;index"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) IsTeacher() bool { return u.UserRole == "teacher" }
func (u *UserModel) IsStudent() bool { return u.UserRole == "student" }
