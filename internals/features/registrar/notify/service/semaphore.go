package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	helper "registrar_portal_backend/internals/helpers"
)

// SmsError is a gateway-side failure: transport error, non-200 HTTP code,
// or a response that is not an accepted-message array.
type SmsError struct {
	Message string
}

func (e *SmsError) Error() string {
	return "Semaphore API error: " + e.Message
}

// SmsSender is the seam the submission orchestrator depends on.
type SmsSender interface {
	Send(ctx context.Context, phone, message, senderName string) (string, error)
}

type SemaphoreClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewSemaphoreClient(apiKey, baseURL string) *SemaphoreClient {
	return &SemaphoreClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Send pushes one text message through Semaphore and returns its message id.
// The phone number is normalized to international format first; a number that
// does not normalize fails before any network call. Exactly one outbound call
// per invocation, no retries — the caller decides whether failure is fatal.
func (s *SemaphoreClient) Send(ctx context.Context, phone, message, senderName string) (string, error) {
	apiNumber, err := helper.InternationalPhone(phone)
	if err != nil {
		return "", fmt.Errorf("invalid Philippine phone number format, must start with 63 or 0 (%s): %w", phone, err)
	}

	form := url.Values{}
	form.Set("apikey", s.apiKey)
	form.Set("number", apiNumber)
	form.Set("message", message)
	form.Set("sendername", senderName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &SmsError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &SmsError{Message: "network error: " + err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &SmsError{Message: "read response: " + err.Error()}
	}

	log.Printf("[SMS] number=%s http=%d", apiNumber, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return "", &SmsError{Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var result []semaphoreMessage
	if err := json.Unmarshal(body, &result); err != nil || len(result) == 0 {
		return "", &SmsError{Message: "invalid response format: " + strings.TrimSpace(string(body))}
	}

	first := result[0]
	if first.Status == "Pending" || first.Status == "Sent" {
		return first.MessageID.String(), nil
	}

	diag := first.Message
	if diag == "" {
		diag = "Unknown error occurred"
	}
	return "", &SmsError{Message: diag}
}

type semaphoreMessage struct {
	MessageID json.Number `json:"message_id"`
	Status    string      `json:"status"`
	Message   string      `json:"message"`
}
