package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"registrar_portal_backend/internals/features/registrar/requests/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.DocumentRequest{}, &model.RequestDocument{}))
	return db
}

func seedRequest(t *testing.T, db *gorm.DB, studentID int64, status string, requested time.Time, docs ...model.RequestDocument) int64 {
	t.Helper()
	req := model.DocumentRequest{
		StudentID:       studentID,
		StudentName:     "Cruz, Juan",
		Grade:           "Grade 10",
		Section:         "Rizal",
		ContactNo:       "09171234567",
		Email:           "juan@example.com",
		PaymentMethod:   "cash",
		ScheduledPickUp: requested.AddDate(0, 0, 7),
		Status:          status,
		TotalAmount:     decimal.NewFromInt(50),
		DateRequested:   requested,
	}
	require.NoError(t, db.Create(&req).Error)

	for i := range docs {
		docs[i].RequestID = req.RequestID
		require.NoError(t, db.Create(&docs[i]).Error)
	}
	return req.RequestID
}

func lineItem(docID int64, docType string, qty int, price float64) model.RequestDocument {
	unit := decimal.NewFromFloat(price)
	return model.RequestDocument{
		DocumentID:   docID,
		DocumentType: docType,
		Quantity:     qty,
		UnitPrice:    unit,
		Subtotal:     unit.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestCancelPendingRequest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	id := seedRequest(t, db, 20230001, "pending", time.Now())

	require.NoError(t, repo.Cancel(context.Background(), 20230001, id))

	var updated model.DocumentRequest
	require.NoError(t, db.First(&updated, id).Error)
	assert.Equal(t, "cancelled", updated.Status)
}

func TestCancelIsCaseInsensitiveOnStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	id := seedRequest(t, db, 20230001, "Pending", time.Now())

	require.NoError(t, repo.Cancel(context.Background(), 20230001, id))
}

func TestCancelNonPendingRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	id := seedRequest(t, db, 20230001, "processing", time.Now())

	err := repo.Cancel(context.Background(), 20230001, id)

	var ce *CancelError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Only pending requests can be cancelled", ce.Reason)

	var untouched model.DocumentRequest
	require.NoError(t, db.First(&untouched, id).Error)
	assert.Equal(t, "processing", untouched.Status)
}

func TestCancelTwiceFailsSecondTime(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	id := seedRequest(t, db, 20230001, "pending", time.Now())

	require.NoError(t, repo.Cancel(context.Background(), 20230001, id))

	err := repo.Cancel(context.Background(), 20230001, id)
	var ce *CancelError
	require.ErrorAs(t, err, &ce)
}

func TestCancelEnforcesOwnership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	id := seedRequest(t, db, 20230001, "pending", time.Now())

	err := repo.Cancel(context.Background(), 99999999, id)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	var untouched model.DocumentRequest
	require.NoError(t, db.First(&untouched, id).Error)
	assert.Equal(t, "pending", untouched.Status)
}

func TestHistoryRowsNewestRequestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)

	older := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	oldID := seedRequest(t, db, 20230001, "completed", older, lineItem(1, "Form 137", 1, 50))
	newID := seedRequest(t, db, 20230001, "pending", newer,
		lineItem(1, "Form 137", 2, 50),
		lineItem(3, "Good Moral", 1, 120.50))
	seedRequest(t, db, 55555555, "pending", newer, lineItem(1, "Form 137", 1, 50))

	rows, err := repo.HistoryRows(context.Background(), 20230001)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, newID, rows[0].RequestID)
	assert.Equal(t, newID, rows[1].RequestID)
	assert.Equal(t, oldID, rows[2].RequestID)
}

func TestHistoryRowsTieBreakOnRequestID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)

	when := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	firstID := seedRequest(t, db, 20230001, "pending", when, lineItem(1, "Form 137", 1, 50))
	secondID := seedRequest(t, db, 20230001, "pending", when, lineItem(1, "Form 137", 1, 50))
	require.Greater(t, secondID, firstID)

	rows, err := repo.HistoryRows(context.Background(), 20230001)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, secondID, rows[0].RequestID)
	assert.Equal(t, firstID, rows[1].RequestID)
}

func TestHistoryRowsEmptyForUnknownStudent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)

	rows, err := repo.HistoryRows(context.Background(), 12345678)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDetailRowsOwnershipInPredicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	id := seedRequest(t, db, 20230001, "pending", time.Now(), lineItem(1, "Form 137", 1, 50))

	rows, err := repo.DetailRows(context.Background(), 20230001, id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Form 137", rows[0].DocumentType)

	_, err = repo.DetailRows(context.Background(), 99999999, id)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestDemotePaymentMethodToCash(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	id := seedRequest(t, db, 20230001, "pending", time.Now())
	require.NoError(t, db.Model(&model.DocumentRequest{}).Where("request_id = ?", id).Update("payment_method", "gcash").Error)

	require.NoError(t, repo.DemotePaymentMethodToCash(context.Background(), id))

	var updated model.DocumentRequest
	require.NoError(t, db.First(&updated, id).Error)
	assert.Equal(t, "cash", updated.PaymentMethod)
}
