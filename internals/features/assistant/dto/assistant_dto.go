// file: internals/features/assistant/dto/assistant_dto.go
package dto

type ChatRequest struct {
	Message string  `json:"message" validate:"required,min=1,max=8000"`
	Subject *string `json:"subject,omitempty" validate:"omitempty,max=100"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type GenerateQuizRequest struct {
	Topic         string `json:"topic" validate:"required,min=1,max=200"`
	Difficulty    string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	QuestionCount int    `json:"question_count" validate:"required,min=1,max=20"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type GeneratedQuiz struct {
	Topic     string         `json:"topic"`
	Questions []QuizQuestion `json:"questions"`
}

type SummarizeRequest struct {
	Text string `json:"text" validate:"required,min=1,max=100000"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type ExtractPDFResponse struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}
