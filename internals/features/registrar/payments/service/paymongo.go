package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

// GatewayError is any PayMongo-side rejection: HTTP >= 400, a transport
// failure on both request paths, or an unreadable payload.
type GatewayError struct {
	HTTPCode int
	Message  string
}

func (e *GatewayError) Error() string {
	if e.HTTPCode > 0 {
		return fmt.Sprintf("PayMongo API Error: %d - %s", e.HTTPCode, e.Message)
	}
	return "PayMongo request failed: " + e.Message
}

type BillingInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type PaymentIntent struct {
	ID     string
	Status string
}

// AttachResult carries either a redirect URL (async flows: gcash, paymaya,
// grab_pay) or an immediate succeeded status (synchronous flows).
type AttachResult struct {
	Status      string
	RedirectURL string
}

// PaymentGateway is the seam the submission orchestrator depends on.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, description string, metadata map[string]string) (*PaymentIntent, error)
	AttachPaymentMethod(ctx context.Context, intentID, methodType string, billing BillingInfo, returnURL string) (*AttachResult, error)
}

type PayMongoClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
	fallback  *fasthttp.Client
}

func NewPayMongoClient(secretKey, baseURL string) *PayMongoClient {
	return &PayMongoClient{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 30 * time.Second}).DialContext,
			},
		},
		fallback: &fasthttp.Client{},
	}
}

// CreatePaymentIntent opens a payment intent for the given amount (converted
// to centavos), fixed to PHP currency and the registrar's allowed methods.
func (p *PayMongoClient) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, description string, metadata map[string]string) (*PaymentIntent, error) {
	attributes := map[string]any{
		"amount": amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"payment_method_allowed": []string{
			"qrph", "card", "dob", "paymaya", "billease", "gcash", "grab_pay",
		},
		"payment_method_options": map[string]any{
			"card": map[string]any{"request_three_d_secure": "any"},
		},
		"currency":     "PHP",
		"capture_type": "automatic",
	}
	if description != "" {
		attributes["description"] = description
	}
	if len(metadata) > 0 {
		attributes["metadata"] = metadata
	}

	body, httpCode, err := p.post(ctx, "/payment_intents", map[string]any{
		"data": map[string]any{"attributes": attributes},
	})
	if err != nil {
		return nil, err
	}

	var decoded payMongoEnvelope
	if jsonErr := json.Unmarshal(body, &decoded); jsonErr != nil {
		return nil, &GatewayError{HTTPCode: httpCode, Message: "unreadable response: " + jsonErr.Error()}
	}
	if httpCode >= 400 {
		return nil, &GatewayError{HTTPCode: httpCode, Message: decoded.errorDetails()}
	}
	if decoded.Data.ID == "" {
		return nil, &GatewayError{HTTPCode: httpCode, Message: "Failed to create payment intent"}
	}

	return &PaymentIntent{ID: decoded.Data.ID, Status: decoded.Data.Attributes.Status}, nil
}

// AttachPaymentMethod creates a payment-method resource from the billing info
// and attaches it to the intent with the return URL for redirect flows.
func (p *PayMongoClient) AttachPaymentMethod(ctx context.Context, intentID, methodType string, billing BillingInfo, returnURL string) (*AttachResult, error) {
	body, httpCode, err := p.post(ctx, "/payment_methods", map[string]any{
		"data": map[string]any{
			"attributes": map[string]any{
				"type":    methodType,
				"billing": billing,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var method payMongoEnvelope
	if jsonErr := json.Unmarshal(body, &method); jsonErr != nil {
		return nil, &GatewayError{HTTPCode: httpCode, Message: "unreadable response: " + jsonErr.Error()}
	}
	if httpCode >= 400 || method.Data.ID == "" {
		return nil, &GatewayError{HTTPCode: httpCode, Message: "Failed to create payment method: " + method.errorDetails()}
	}

	body, httpCode, err = p.post(ctx, "/payment_intents/"+intentID+"/attach", map[string]any{
		"data": map[string]any{
			"attributes": map[string]any{
				"payment_method": method.Data.ID,
				"return_url":     returnURL,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var attached payMongoEnvelope
	if jsonErr := json.Unmarshal(body, &attached); jsonErr != nil {
		return nil, &GatewayError{HTTPCode: httpCode, Message: "unreadable response: " + jsonErr.Error()}
	}
	if httpCode >= 400 {
		return nil, &GatewayError{HTTPCode: httpCode, Message: "Failed to attach payment method: " + attached.errorDetails()}
	}

	return &AttachResult{
		Status:      attached.Data.Attributes.Status,
		RedirectURL: attached.Data.Attributes.NextAction.Redirect.URL,
	}, nil
}

// post sends one JSON POST. The primary path is net/http; a transport-level
// failure there gets exactly one retry over fasthttp before surfacing, to
// bound the added latency.
func (p *PayMongoClient) post(ctx context.Context, path string, payload any) ([]byte, int, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, &GatewayError{Message: "encode payload: " + err.Error()}
	}
	url := p.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, 0, &GatewayError{Message: err.Error()}
	}
	p.setHeaders(req.Header.Set)

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("[PAYMONGO] primary transport failed (%v), retrying via fallback", err)
		return p.postFallback(url, raw)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, 0, &GatewayError{Message: "read response: " + err.Error()}
	}
	return buf.Bytes(), resp.StatusCode, nil
}

func (p *PayMongoClient) postFallback(url string, raw []byte) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	p.setHeaders(req.Header.Set)
	req.SetBody(raw)

	if err := p.fallback.DoTimeout(req, resp, 60*time.Second); err != nil {
		return nil, 0, &GatewayError{Message: "HTTP request failed on both transports: " + err.Error()}
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, resp.StatusCode(), nil
}

func (p *PayMongoClient) setHeaders(set func(key, value string)) {
	set("Accept", "application/json")
	set("Content-Type", "application/json")
	set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(p.secretKey+":")))
}

// =======================
// WIRE SHAPES
// =======================

type payMongoEnvelope struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Status     string `json:"status"`
			NextAction struct {
				Redirect struct {
					URL string `json:"url"`
				} `json:"redirect"`
			} `json:"next_action"`
		} `json:"attributes"`
	} `json:"data"`
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (e payMongoEnvelope) errorDetails() string {
	if len(e.Errors) == 0 {
		return "Unknown error"
	}
	details := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		if ge.Detail == "" {
			details = append(details, "Unknown error")
			continue
		}
		details = append(details, ge.Detail)
	}
	return strings.Join(details, ", ")
}
