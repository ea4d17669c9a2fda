package model

import (
	"fmt"
	"strings"
)

// PaymentMethod is a closed set. Adding a method must update every switch
// below, so a missed branch is a compile-time gap instead of a missed if.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentGCash   PaymentMethod = "gcash"
	PaymentMaya    PaymentMethod = "maya"
	PaymentPayMaya PaymentMethod = "paymaya"
	PaymentCard    PaymentMethod = "card"
	PaymentGrabPay PaymentMethod = "grab_pay"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, nil
	case PaymentGCash:
		return PaymentGCash, nil
	case PaymentMaya:
		return PaymentMaya, nil
	case PaymentPayMaya:
		return PaymentPayMaya, nil
	case PaymentCard:
		return PaymentCard, nil
	case PaymentGrabPay:
		return PaymentGrabPay, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}

// IsVirtual reports whether the method needs a gateway round-trip.
func (m PaymentMethod) IsVirtual() bool {
	switch m {
	case PaymentCash:
		return false
	case PaymentGCash, PaymentMaya, PaymentPayMaya, PaymentCard, PaymentGrabPay:
		return true
	}
	return false
}

// PayMongoType maps the portal method onto PayMongo's payment_method type.
func (m PaymentMethod) PayMongoType() string {
	switch m {
	case PaymentGCash:
		return "gcash"
	case PaymentMaya, PaymentPayMaya:
		return "paymaya"
	case PaymentCard:
		return "card"
	case PaymentGrabPay:
		return "grab_pay"
	}
	return "gcash"
}

// Request lifecycle states. Transitions only move forward except to
// cancelled, and cancellation is allowed from pending only.
const (
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusRejected   = "rejected"
)
