package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentService "registrar_portal_backend/internals/features/registrar/payments/service"
	"registrar_portal_backend/internals/features/registrar/requests/dto"
	"registrar_portal_backend/internals/features/registrar/requests/repository"
)

type fakeStore struct {
	insertCalls  int
	lastParams   repository.InsertParams
	insertResult *repository.InsertResult
	insertErr    error
	demoteCalls  int
	demotedID    int64
}

func (f *fakeStore) InsertDocumentRequest(_ context.Context, p repository.InsertParams) (*repository.InsertResult, error) {
	f.insertCalls++
	f.lastParams = p
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	return f.insertResult, nil
}

func (f *fakeStore) DemotePaymentMethodToCash(_ context.Context, requestID int64) error {
	f.demoteCalls++
	f.demotedID = requestID
	return nil
}

type fakeGateway struct {
	intentErr   error
	attachErr   error
	redirectURL string
	status      string
	returnURL   string
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, _ decimal.Decimal, _ string, _ map[string]string) (*paymentService.PaymentIntent, error) {
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return &paymentService.PaymentIntent{ID: "pi_test", Status: "awaiting_payment_method"}, nil
}

func (f *fakeGateway) AttachPaymentMethod(_ context.Context, _, _ string, _ paymentService.BillingInfo, returnURL string) (*paymentService.AttachResult, error) {
	f.returnURL = returnURL
	if f.attachErr != nil {
		return nil, f.attachErr
	}
	return &paymentService.AttachResult{Status: f.status, RedirectURL: f.redirectURL}, nil
}

type fakeSms struct {
	calls int
	phone string
	text  string
	err   error
}

func (f *fakeSms) Send(_ context.Context, phone, message, _ string) (string, error) {
	f.calls++
	f.phone = phone
	f.text = message
	if f.err != nil {
		return "", f.err
	}
	return "msg-1", nil
}

func validSubmitRequest() *dto.SubmitRequest {
	return &dto.SubmitRequest{
		StudentInfo: dto.StudentInfo{
			StudentNumber: "20230001",
			Email:         "juan@example.com",
			ContactNo:     "0917-123-4567",
			Surname:       "Cruz",
			Firstname:     "Juan",
			Middlename:    "Santos",
			Grade:         "Grade 10",
			Section:       "Rizal",
		},
		SelectedDocs: []dto.SelectedDoc{
			{ID: 1, Quantity: 2, Price: 50},
			{ID: 3, Quantity: 1, Price: 120.50},
		},
		PaymentMethod: "cash",
	}
}

func newTestService(store *fakeStore, gateway *fakeGateway, sms *fakeSms) *SubmitService {
	return NewSubmitService(store, gateway, sms, "http://localhost:8000", "PCSchool")
}

func TestSubmitCashHappyPath(t *testing.T) {
	store := &fakeStore{insertResult: &repository.InsertResult{
		RequestID:   42,
		TotalAmount: decimal.NewFromFloat(220.50),
		Message:     "Document request submitted successfully!",
	}}
	gateway := &fakeGateway{}
	sms := &fakeSms{}

	resp, err := newTestService(store, gateway, sms).Submit(context.Background(), validSubmitRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), resp.RequestID)
	assert.Equal(t, "Cruz, Juan Santos", resp.StudentName)
	assert.Equal(t, 220.50, resp.GrandTotal)
	assert.Equal(t, 2, resp.DocumentsProcessed)
	assert.Equal(t, "cash", resp.PaymentMethod)
	assert.False(t, resp.PaymentRedirect)
	assert.Nil(t, resp.PaymentURL)

	assert.Equal(t, 1, store.insertCalls)
	assert.Equal(t, int64(20230001), store.lastParams.StudentID)
	assert.Equal(t, "09171234567", store.lastParams.ContactNo)
	assert.Equal(t, "cash", store.lastParams.PaymentMethod)
	assert.JSONEq(t,
		`[{"id":1,"quantity":2,"price":50},{"id":3,"quantity":1,"price":120.5}]`,
		string(store.lastParams.Documents))

	assert.True(t, resp.SmsSent)
	assert.Equal(t, 1, sms.calls)
	assert.Equal(t, "09171234567", sms.phone)
	assert.Contains(t, sms.text, "Hello Juan!")
	assert.Contains(t, sms.text, "₱220.50")
	assert.Contains(t, sms.text, "Cash")
}

func TestSubmitGrandTotalTracksStoredAmount(t *testing.T) {
	// The cart sums to 220.50 client-side, but the insert routine recomputes
	// the total from the stored rows; the response must echo the stored value.
	store := &fakeStore{insertResult: &repository.InsertResult{
		RequestID:   9,
		TotalAmount: decimal.NewFromInt(75),
	}}
	sms := &fakeSms{}

	resp, err := newTestService(store, &fakeGateway{}, sms).Submit(context.Background(), validSubmitRequest())
	require.NoError(t, err)

	assert.Equal(t, 75.0, resp.GrandTotal)
	assert.Contains(t, sms.text, "₱75.00")
}

func TestSubmitMissingFieldRejectsBeforePersist(t *testing.T) {
	store := &fakeStore{}
	req := validSubmitRequest()
	req.StudentInfo.Email = "  "

	_, err := newTestService(store, &fakeGateway{}, &fakeSms{}).Submit(context.Background(), req)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
	assert.Zero(t, store.insertCalls)
}

func TestSubmitAllInvalidDocsRejected(t *testing.T) {
	store := &fakeStore{}
	req := validSubmitRequest()
	req.SelectedDocs = []dto.SelectedDoc{
		{ID: 1, Quantity: 0, Price: 50},
		{ID: 0, Quantity: 2, Price: 50},
	}

	_, err := newTestService(store, &fakeGateway{}, &fakeSms{}).Submit(context.Background(), req)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "No valid documents selected", ve.Message)
	assert.Zero(t, store.insertCalls)
}

func TestSubmitInvalidDocsAreDroppedSilently(t *testing.T) {
	store := &fakeStore{insertResult: &repository.InsertResult{RequestID: 7, TotalAmount: decimal.NewFromInt(100)}}
	req := validSubmitRequest()
	req.SelectedDocs = []dto.SelectedDoc{
		{ID: 1, Quantity: 0, Price: 999},
		{ID: 2, Quantity: 1, Price: 100},
	}

	resp, err := newTestService(store, &fakeGateway{}, &fakeSms{}).Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.DocumentsProcessed)
}

func TestSubmitGcashRedirect(t *testing.T) {
	store := &fakeStore{insertResult: &repository.InsertResult{RequestID: 42, TotalAmount: decimal.NewFromInt(100)}}
	gateway := &fakeGateway{redirectURL: "https://pay.example/checkout", status: "awaiting_next_action"}
	req := validSubmitRequest()
	req.PaymentMethod = "gcash"

	resp, err := newTestService(store, gateway, &fakeSms{}).Submit(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.PaymentRedirect)
	require.NotNil(t, resp.PaymentURL)
	assert.Equal(t, "https://pay.example/checkout", *resp.PaymentURL)
	require.NotNil(t, resp.PaymentIntentID)
	assert.Equal(t, "pi_test", *resp.PaymentIntentID)
	assert.Equal(t, "Redirecting to payment gateway...", resp.Message)
	assert.Equal(t, "http://localhost:8000/api/public/payments/return?request_id=42&payment_intent=pi_test", gateway.returnURL)
	assert.Zero(t, store.demoteCalls)
}

func TestSubmitGatewayFailureFallsBackToCash(t *testing.T) {
	store := &fakeStore{insertResult: &repository.InsertResult{RequestID: 42, TotalAmount: decimal.NewFromInt(100)}}
	gateway := &fakeGateway{intentErr: &paymentService.GatewayError{HTTPCode: 500, Message: "upstream down"}}
	req := validSubmitRequest()
	req.PaymentMethod = "gcash"

	resp, err := newTestService(store, gateway, &fakeSms{}).Submit(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "cash", resp.PaymentMethod)
	assert.False(t, resp.PaymentRedirect)
	assert.Contains(t, resp.Message, "Online payment temporarily unavailable")
	assert.Contains(t, resp.Message, "upstream down")
	assert.Equal(t, 1, store.demoteCalls)
	assert.Equal(t, int64(42), store.demotedID)
}

func TestSubmitPersistFailureFailsWholeSubmission(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("stored routine failed: no valid documents")}
	sms := &fakeSms{}

	_, err := newTestService(store, &fakeGateway{}, sms).Submit(context.Background(), validSubmitRequest())
	require.Error(t, err)
	assert.Zero(t, sms.calls)
}

func TestSubmitSmsFailureDoesNotOverturnSuccess(t *testing.T) {
	store := &fakeStore{insertResult: &repository.InsertResult{RequestID: 42, TotalAmount: decimal.NewFromInt(100)}}
	sms := &fakeSms{err: errors.New("Semaphore API error: insufficient credits")}

	resp, err := newTestService(store, &fakeGateway{}, sms).Submit(context.Background(), validSubmitRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.False(t, resp.SmsSent)
	assert.Contains(t, resp.SmsMessage, "SMS sending failed")
}
