package dto

// StudentInfo is the canonical student snapshot of a submission. Field names
// here are the single source of truth for the request schema; there are no
// per-page aliases.
type StudentInfo struct {
	StudentNumber string `json:"studentNumber" validate:"required,numeric"`
	Email         string `json:"email" validate:"required,email"`
	ContactNo     string `json:"contactNo" validate:"required"`
	Surname       string `json:"surname" validate:"required"`
	Firstname     string `json:"firstname" validate:"required"`
	Middlename    string `json:"middlename"`
	Grade         string `json:"grade" validate:"required"`
	Section       string `json:"section" validate:"required"`
}

type SelectedDoc struct {
	ID       int64   `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type SubmitRequest struct {
	StudentInfo   StudentInfo   `json:"studentInfo" validate:"required"`
	SelectedDocs  []SelectedDoc `json:"selectedDocs" validate:"required,min=1,dive"`
	PaymentMethod string        `json:"paymentMethod" validate:"required"`
}

type SubmitResponse struct {
	Success            bool    `json:"success"`
	Message            string  `json:"message"`
	GrandTotal         float64 `json:"grand_total"`
	StudentName        string  `json:"student_name"`
	DocumentsProcessed int     `json:"documents_processed"`
	RequestID          int64   `json:"request_id"`
	PaymentRedirect    bool    `json:"payment_redirect"`
	PaymentURL         *string `json:"payment_url"`
	PaymentIntentID    *string `json:"payment_intent_id"`
	PaymentMethod      string  `json:"payment_method"`
	SmsSent            bool    `json:"sms_sent"`
	SmsMessage         string  `json:"sms_message"`
}

type CancelRequest struct {
	RequestID int64 `json:"request_id" validate:"required,gt=0"`
}
