package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []HistoryRow {
	newer := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	older := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	return []HistoryRow{
		{RequestDocID: 10, RequestID: 5, DocumentID: 1, DocumentType: "Form 137", Quantity: 2, UnitPrice: 50, Subtotal: 100, PaymentMethod: "gcash", DateRequested: newer, Status: "pending", TotalAmount: 220.50},
		{RequestDocID: 11, RequestID: 5, DocumentID: 3, DocumentType: "Good Moral", Quantity: 1, UnitPrice: 120.50, Subtotal: 120.50, PaymentMethod: "gcash", DateRequested: newer, Status: "pending", TotalAmount: 220.50},
		{RequestDocID: 7, RequestID: 4, DocumentID: 1, DocumentType: "Form 137", Quantity: 1, UnitPrice: 50, Subtotal: 50, PaymentMethod: "cash", DateRequested: older, Status: "completed", TotalAmount: 50},
	}
}

func TestGroupHistoryRowsKeepsFirstSeenOrder(t *testing.T) {
	groups := GroupHistoryRows(sampleRows())

	require.Len(t, groups, 2)
	assert.Equal(t, int64(5), groups[0].RequestID)
	assert.Equal(t, int64(4), groups[1].RequestID)

	require.Len(t, groups[0].Documents, 2)
	assert.Equal(t, "Form 137", groups[0].Documents[0].DocumentType)
	assert.Equal(t, "Good Moral", groups[0].Documents[1].DocumentType)

	assert.Equal(t, "gcash", groups[0].PaymentMethod)
	assert.Equal(t, "pending", groups[0].Status)
	assert.Equal(t, "completed", groups[1].Status)
}

func TestGroupHistoryRowsAccumulatesSubtotals(t *testing.T) {
	groups := GroupHistoryRows(sampleRows())

	require.Len(t, groups, 2)
	assert.InDelta(t, 220.50, groups[0].Total, 0.001)
	assert.InDelta(t, 50, groups[1].Total, 0.001)
}

func TestGroupHistoryRowsIsPure(t *testing.T) {
	rows := sampleRows()
	first := GroupHistoryRows(rows)
	second := GroupHistoryRows(rows)

	assert.Equal(t, first, second)
}

func TestGroupHistoryRowsEmptyInput(t *testing.T) {
	groups := GroupHistoryRows(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
