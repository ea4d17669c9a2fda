package dto

type SendSmsRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Message     string `json:"message" validate:"required"`
	SenderName  string `json:"senderName"`
}
