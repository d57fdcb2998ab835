// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "classku_backend/internals/features/users/user/model"
)

/* ========================================================
   Requests
======================================================== */

type RegisterRequest struct {
	UserName   string  `json:"user_name" validate:"required,min=3,max=100"`
	UserEmail  string  `json:"user_email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	UserRole   string  `json:"user_role" validate:"required,oneof=teacher student"`
	Subject    *string `json:"subject,omitempty"`
	GradeLevel *string `json:"grade_level,omitempty"`
	RollNumber *string `json:"roll_number,omitempty"`
}

func (r RegisterRequest) ToModel(passwordHash string) userModel.UserModel {
	return userModel.UserModel{
		UserName:       r.UserName,
		UserEmail:      r.UserEmail,
		UserPassword:   passwordHash,
		UserRole:       r.UserRole,
		UserIsActive:   true,
		UserSubject:    r.Subject,
		UserGradeLevel: r.GradeLevel,
		UserRollNumber: r.RollNumber,
	}
}

type LoginRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

/* ========================================================
   Responses
======================================================== */

type UserResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	UserName       string    `json:"user_name"`
	UserEmail      string    `json:"user_email"`
	UserRole       string    `json:"user_role"`
	UserAvatarURL  *string   `json:"user_avatar_url,omitempty"`
	UserSubject    *string   `json:"user_subject,omitempty"`
	UserGradeLevel *string   `json:"user_grade_level,omitempty"`
	UserRollNumber *string   `json:"user_roll_number,omitempty"`
	UserCreatedAt  time.Time `json:"user_created_at"`
}

func NewUserResponse(m *userModel.UserModel) UserResponse {
	return UserResponse{
		UserID:         m.UserID,
		UserName:       m.UserName,
		UserEmail:      m.UserEmail,
		UserRole:       m.UserRole,
		UserAvatarURL:  m.UserAvatarURL,
		UserSubject:    m.UserSubject,
		UserGradeLevel: m.UserGradeLevel,
		UserRollNumber: m.UserRollNumber,
		UserCreatedAt:  m.UserCreatedAt,
	}
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}
