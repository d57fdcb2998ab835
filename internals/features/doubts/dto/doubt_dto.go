// file: internals/features/doubts/dto/doubt_dto.go
package dto

type CreateDoubtRequest struct {
	DoubtAssignmentID string `json:"doubt_assignment_id" validate:"required,uuid4"`
	DoubtQuestion     string `json:"doubt_question" validate:"required,min=1,max=5000"`
	DoubtIsPublic     bool   `json:"doubt_is_public"`
}

type AnswerDoubtRequest struct {
	DoubtAnswer string `json:"doubt_answer" validate:"required,min=1,max=10000"`
}

type UpdateDoubtStatusRequest struct {
	DoubtStatus string `json:"doubt_status" validate:"required,oneof=pending answered resolved closed"`
}

type VoteDoubtRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}
