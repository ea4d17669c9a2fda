package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"registrar_portal_backend/internals/features/registrar/requests/dto"
	"registrar_portal_backend/internals/features/registrar/requests/model"
)

var ErrRequestNotFound = errors.New("request not found")

// CancelError is a state or ownership violation: the request exists but is
// not in a cancellable state. No mutation happens when it is returned.
type CancelError struct {
	Reason string
}

func (e *CancelError) Error() string {
	return e.Reason
}

type InsertParams struct {
	StudentID       int64
	StudentName     string
	Grade           string
	Section         string
	ContactNo       string
	Email           string
	PaymentMethod   string
	ScheduledPickup time.Time
	Documents       datatypes.JSON
}

type InsertResult struct {
	RequestID   int64           `gorm:"column:request_id"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount"`
	Message     string          `gorm:"column:message"`
}

type RequestRepository struct {
	DB *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{DB: db}
}

// InsertDocumentRequest runs the atomic multi-row insert routine: the request
// and all of its line items are created in one transaction, or none are.
func (r *RequestRepository) InsertDocumentRequest(ctx context.Context, p InsertParams) (*InsertResult, error) {
	var result InsertResult
	err := r.DB.WithContext(ctx).
		Raw("SELECT * FROM insert_document_request(?, ?, ?, ?, ?, ?, ?, ?, ?::jsonb)",
			p.StudentID, p.StudentName, p.Grade, p.Section, p.ContactNo, p.Email,
			p.PaymentMethod, p.ScheduledPickup.Format("2006-01-02"), string(p.Documents)).
		Scan(&result).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return nil, errors.New("stored routine failed: " + pgErr.Message)
		}
		return nil, err
	}
	if result.RequestID == 0 {
		return nil, errors.New("stored routine returned no request id")
	}
	return &result, nil
}

// DemotePaymentMethodToCash is the compensating update after a gateway
// failure: the request already exists, only its payment method folds back.
func (r *RequestRepository) DemotePaymentMethodToCash(ctx context.Context, requestID int64) error {
	return r.DB.WithContext(ctx).
		Model(&model.DocumentRequest{}).
		Where("request_id = ?", requestID).
		Update("payment_method", string(model.PaymentCash)).Error
}

// HistoryRows returns every line item of the student's requests as flat join
// rows, newest request first with request_id as the stable tie-break.
func (r *RequestRepository) HistoryRows(ctx context.Context, studentID int64) ([]dto.HistoryRow, error) {
	rows := make([]dto.HistoryRow, 0)
	err := r.DB.WithContext(ctx).
		Table("request_documents AS rd").
		Select(`rd.request_doc_id, dr.request_id, rd.document_id, rd.document_type,
			rd.quantity, rd.unit_price, rd.subtotal,
			dr.payment_method, dr.date_requested, dr.status, dr.scheduled_pick_up, dr.total_amount`).
		Joins("INNER JOIN document_requests AS dr ON rd.request_id = dr.request_id").
		Where("dr.student_id = ?", studentID).
		Order("dr.date_requested DESC, dr.request_id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DetailRows returns the rows of one request, ownership enforced in the query
// predicate itself.
func (r *RequestRepository) DetailRows(ctx context.Context, studentID, requestID int64) ([]dto.HistoryRow, error) {
	rows := make([]dto.HistoryRow, 0)
	err := r.DB.WithContext(ctx).
		Table("request_documents AS rd").
		Select(`rd.request_doc_id, dr.request_id, rd.document_id, rd.document_type,
			rd.quantity, rd.unit_price, rd.subtotal,
			dr.payment_method, dr.date_requested, dr.status, dr.scheduled_pick_up, dr.total_amount`).
		Joins("INNER JOIN document_requests AS dr ON rd.request_id = dr.request_id").
		Where("dr.request_id = ? AND dr.student_id = ?", requestID, studentID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRequestNotFound
	}
	return rows, nil
}

// Cancel flips a pending request to cancelled inside one transaction.
// Ownership and the pending check sit in the same UPDATE predicate, so two
// concurrent cancels (or an admin status change racing the read) cannot both
// win: the second one affects zero rows and gets a CancelError.
func (r *RequestRepository) Cancel(ctx context.Context, studentID, requestID int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.DocumentRequest
		err := tx.Select("request_id", "status").
			Where("request_id = ? AND student_id = ?", requestID, studentID).
			First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		if err != nil {
			return err
		}

		if strings.ToLower(current.Status) != model.StatusPending {
			return &CancelError{Reason: "Only pending requests can be cancelled"}
		}

		res := tx.Model(&model.DocumentRequest{}).
			Where("request_id = ? AND student_id = ? AND LOWER(status) = ?", requestID, studentID, model.StatusPending).
			Update("status", model.StatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &CancelError{Reason: "Only pending requests can be cancelled"}
		}
		return nil
	})
}
