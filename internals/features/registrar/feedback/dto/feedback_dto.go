package dto

type SubmitFeedbackRequest struct {
	Email           string `json:"email" validate:"required,email"`
	FeedbackType    string `json:"feedbackType" validate:"required"`
	FeedbackMessage string `json:"feedbackMessage" validate:"required"`
}
