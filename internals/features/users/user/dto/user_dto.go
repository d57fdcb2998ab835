// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "classku_backend/internals/features/users/user/model"
)

type ProfileResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	UserName       string    `json:"user_name"`
	UserEmail      string    `json:"user_email"`
	UserRole       string    `json:"user_role"`
	UserAvatarURL  *string   `json:"user_avatar_url,omitempty"`
	UserBio        *string   `json:"user_bio,omitempty"`
	UserSubject    *string   `json:"user_subject,omitempty"`
	UserGradeLevel *string   `json:"user_grade_level,omitempty"`
	UserRollNumber *string   `json:"user_roll_number,omitempty"`

	Stats ProfileStats `json:"stats"`

	UserCreatedAt time.Time `json:"user_created_at"`
	UserUpdatedAt time.Time `json:"user_updated_at"`
}

type ProfileStats struct {
	CompletedAssignments int        `json:"completed_assignments"`
	AverageScore         int        `json:"average_score"`
	TotalPoints          float64    `json:"total_points"`
	Rank                 int        `json:"rank"`
	StreakDays           int        `json:"streak_days"`
	LastActiveDate       *time.Time `json:"last_active_date,omitempty"`
	Badges               []string   `json:"badges"`
}

func NewProfileResponse(m *userModel.UserModel) ProfileResponse {
	badges := make([]string, 0, len(m.UserBadges))
	badges = append(badges, m.UserBadges...)

	return ProfileResponse{
		UserID:         m.UserID,
		UserName:       m.UserName,
		UserEmail:      m.UserEmail,
		UserRole:       m.UserRole,
		UserAvatarURL:  m.UserAvatarURL,
		UserBio:        m.UserBio,
		UserSubject:    m.UserSubject,
		UserGradeLevel: m.UserGradeLevel,
		UserRollNumber: m.UserRollNumber,
		Stats: ProfileStats{
			CompletedAssignments: m.UserStatsCompletedAssignments,
			AverageScore:         m.UserStatsAverageScore,
			TotalPoints:          m.UserStatsTotalPoints,
			Rank:                 m.UserStatsRank,
			StreakDays:           m.UserStreakDays,
			LastActiveDate:       m.UserLastActiveDate,
			Badges:               badges,
		},
		UserCreatedAt: m.UserCreatedAt,
		UserUpdatedAt: m.UserUpdatedAt,
	}
}

type PatchProfileRequest struct {
	UserName       *string `json:"user_name,omitempty" validate:"omitempty,min=3,max=100"`
	UserBio        *string `json:"user_bio,omitempty" validate:"omitempty,max=500"`
	UserSubject    *string `json:"user_subject,omitempty" validate:"omitempty,max=100"`
	UserGradeLevel *string `json:"user_grade_level,omitempty" validate:"omitempty,max=50"`
	UserRollNumber *string `json:"user_roll_number,omitempty" validate:"omitempty,max=50"`
}

func (p *PatchProfileRequest) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.UserName != nil {
		updates["user_name"] = *p.UserName
	}
	if p.UserBio != nil {
		updates["user_bio"] = *p.UserBio
	}
	if p.UserSubject != nil {
		updates["user_subject"] = *p.UserSubject
	}
	if p.UserGradeLevel != nil {
		updates["user_grade_level"] = *p.UserGradeLevel
	}
	if p.UserRollNumber != nil {
		updates["user_roll_number"] = *p.UserRollNumber
	}
	return updates
}
