package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	notifyService "registrar_portal_backend/internals/features/registrar/notify/service"
	paymentService "registrar_portal_backend/internals/features/registrar/payments/service"
	"registrar_portal_backend/internals/features/registrar/requests/dto"
	"registrar_portal_backend/internals/features/registrar/requests/model"
	"registrar_portal_backend/internals/features/registrar/requests/repository"
	helper "registrar_portal_backend/internals/helpers"
)

// RequestStore is the persistence surface the orchestrator needs: the atomic
// insert and the compensating payment-method update.
type RequestStore interface {
	InsertDocumentRequest(ctx context.Context, p repository.InsertParams) (*repository.InsertResult, error)
	DemotePaymentMethodToCash(ctx context.Context, requestID int64) error
}

type SubmitService struct {
	Store      RequestStore
	Gateway    paymentService.PaymentGateway
	SMS        notifyService.SmsSender
	BaseURL    string
	SenderName string
}

func NewSubmitService(store RequestStore, gateway paymentService.PaymentGateway, sms notifyService.SmsSender, baseURL, senderName string) *SubmitService {
	return &SubmitService{
		Store:      store,
		Gateway:    gateway,
		SMS:        sms,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		SenderName: senderName,
	}
}

type docEntry struct {
	ID       int64   `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Submit runs the whole submission: validate, persist atomically, then the
// gateway and SMS side effects. Only validation and the persist step can fail
// the submission as a whole; gateway and SMS failures are folded into the
// response after the row is already committed.
func (s *SubmitService) Submit(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	// ---- Validation (fail fast, no side effects yet) ----
	student := req.StudentInfo
	for field, value := range map[string]string{
		"studentNumber": student.StudentNumber,
		"email":         student.Email,
		"contactNo":     student.ContactNo,
		"surname":       student.Surname,
		"firstname":     student.Firstname,
		"grade":         student.Grade,
		"section":       student.Section,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, missingField(field)
		}
	}

	if len(req.SelectedDocs) == 0 {
		return nil, &ValidationError{Field: "selectedDocs", Message: "No documents selected"}
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return nil, missingField("paymentMethod")
	}

	method, err := model.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, &ValidationError{Field: "paymentMethod", Message: err.Error()}
	}

	studentNumber, err := strconv.ParseInt(strings.TrimSpace(student.StudentNumber), 10, 64)
	if err != nil || studentNumber <= 0 {
		return nil, &ValidationError{Field: "studentNumber", Message: "Invalid student number"}
	}

	contactNo, err := helper.LocalPhone(student.ContactNo)
	if err != nil {
		return nil, &ValidationError{Field: "contactNo", Message: err.Error()}
	}

	// Items failing the filter are silently dropped; an empty surviving set
	// is the only case that rejects. The authoritative total comes back from
	// the insert routine, which recomputes it from the stored line items.
	survivors := make([]docEntry, 0, len(req.SelectedDocs))
	for _, doc := range req.SelectedDocs {
		if doc.Quantity <= 0 || doc.ID <= 0 {
			continue
		}
		survivors = append(survivors, docEntry{ID: doc.ID, Quantity: doc.Quantity, Price: doc.Price})
	}
	if len(survivors) == 0 {
		return nil, &ValidationError{Field: "selectedDocs", Message: "No valid documents selected"}
	}

	studentName := student.Surname + ", " + student.Firstname
	if strings.TrimSpace(student.Middlename) != "" {
		studentName += " " + student.Middlename
	}

	scheduledPickup := time.Now().AddDate(0, 0, 7)

	// ---- Atomic persist (sole write boundary) ----
	docsJSON, err := json.Marshal(survivors)
	if err != nil {
		return nil, fmt.Errorf("encode documents: %w", err)
	}

	inserted, err := s.Store.InsertDocumentRequest(ctx, repository.InsertParams{
		StudentID:       studentNumber,
		StudentName:     studentName,
		Grade:           student.Grade,
		Section:         student.Section,
		ContactNo:       contactNo,
		Email:           student.Email,
		PaymentMethod:   string(method),
		ScheduledPickup: scheduledPickup,
		Documents:       datatypes.JSON(docsJSON),
	})
	if err != nil {
		return nil, err
	}

	requestID := inserted.RequestID
	finalAmount := inserted.TotalAmount
	message := inserted.Message
	if message == "" {
		message = "Document request submitted successfully!"
	}

	// ---- Payment (post-commit, absorbed on failure) ----
	resp := &dto.SubmitResponse{
		Success:            true,
		GrandTotal:         finalAmount.InexactFloat64(),
		StudentName:        studentName,
		DocumentsProcessed: len(survivors),
		RequestID:          requestID,
		PaymentMethod:      string(method),
	}

	if method.IsVirtual() {
		redirectURL, intentID, payErr := s.processPayment(ctx, method, requestID, studentNumber, studentName, student, finalAmount, len(survivors), contactNo)
		switch {
		case payErr != nil:
			// Persistence already succeeded; fold the request back to cash
			// instead of orphaning it.
			if demoteErr := s.Store.DemotePaymentMethodToCash(ctx, requestID); demoteErr != nil {
				log.Printf("[ERROR] cash fallback update failed for request #%d: %v", requestID, demoteErr)
			}
			method = model.PaymentCash
			resp.PaymentMethod = string(method)
			message = "Online payment temporarily unavailable. Your request has been saved as cash payment. Error: " + payErr.Error()
		case redirectURL != "":
			resp.PaymentRedirect = true
			resp.PaymentURL = &redirectURL
			resp.PaymentIntentID = &intentID
			message = "Redirecting to payment gateway..."
		default:
			resp.PaymentIntentID = &intentID
			message = "Payment completed successfully!"
		}
	}

	// ---- SMS (best effort, never overturns success) ----
	smsText := s.buildSmsText(student.Firstname, requestID, finalAmount, method, scheduledPickup)
	if _, smsErr := s.SMS.Send(ctx, contactNo, smsText, s.SenderName); smsErr != nil {
		resp.SmsSent = false
		resp.SmsMessage = "SMS sending failed: " + smsErr.Error()
		log.Printf("❌ SMS failed for request #%d: %v", requestID, smsErr)
	} else {
		resp.SmsSent = true
		resp.SmsMessage = "SMS notification sent successfully!"
		log.Printf("✅ SMS sent to %s for request #%d", contactNo, requestID)
	}

	resp.Message = message
	return resp, nil
}

// processPayment runs the gateway round-trip: intent, then method + attach.
// Returns the redirect URL for async flows, or "" when the intent settled
// synchronously.
func (s *SubmitService) processPayment(ctx context.Context, method model.PaymentMethod, requestID, studentNumber int64, studentName string, student dto.StudentInfo, amount decimal.Decimal, docCount int, contactNo string) (redirectURL, intentID string, err error) {
	description := fmt.Sprintf("Document Request #%d - %s", requestID, studentName)
	metadata := map[string]string{
		"request_id":      strconv.FormatInt(requestID, 10),
		"student_number":  strconv.FormatInt(studentNumber, 10),
		"student_name":    studentName,
		"documents_count": strconv.Itoa(docCount),
		"total_amount":    amount.StringFixed(2),
		"grade_section":   student.Grade + " - " + student.Section,
	}

	intent, err := s.Gateway.CreatePaymentIntent(ctx, amount, description, metadata)
	if err != nil {
		return "", "", err
	}

	returnURL := fmt.Sprintf("%s/api/public/payments/return?request_id=%d&payment_intent=%s", s.BaseURL, requestID, intent.ID)
	attached, err := s.Gateway.AttachPaymentMethod(ctx, intent.ID, method.PayMongoType(), paymentService.BillingInfo{
		Name:  studentName,
		Email: student.Email,
		Phone: contactNo,
	}, returnURL)
	if err != nil {
		return "", "", err
	}

	if attached.RedirectURL != "" {
		return attached.RedirectURL, intent.ID, nil
	}
	if attached.Status == "succeeded" {
		return "", intent.ID, nil
	}
	return "", "", &paymentService.GatewayError{Message: "Failed to get payment redirect URL from PayMongo"}
}

func (s *SubmitService) buildSmsText(firstname string, requestID int64, amount decimal.Decimal, method model.PaymentMethod, pickup time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! Your document request #%d has been received. ", firstname, requestID)
	fmt.Fprintf(&b, "Total amount: ₱%s. ", amount.StringFixed(2))
	if method == model.PaymentCash {
		b.WriteString("Payment method: Cash. Please proceed to the registrar's office for payment and processing.")
	} else {
		fmt.Fprintf(&b, "Payment method: %s. Please complete your payment online.", method)
	}
	fmt.Fprintf(&b, " Scheduled pickup: %s. Thank you!", pickup.Format("2006-01-02"))
	return b.String()
}
