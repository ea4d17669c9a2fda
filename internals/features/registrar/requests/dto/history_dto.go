package dto

import "time"

// HistoryRow is one flat join row: one line item plus its request's fields.
// Wire names keep the original column casing the frontend already consumes.
type HistoryRow struct {
	RequestDocID    int64     `gorm:"column:request_doc_id" json:"Request_Doc_ID"`
	RequestID       int64     `gorm:"column:request_id" json:"Request_ID"`
	DocumentID      int64     `gorm:"column:document_id" json:"Document_ID"`
	DocumentType    string    `gorm:"column:document_type" json:"Document_Type"`
	Quantity        int       `gorm:"column:quantity" json:"Quantity"`
	UnitPrice       float64   `gorm:"column:unit_price" json:"Unit_Price"`
	Subtotal        float64   `gorm:"column:subtotal" json:"Subtotal"`
	PaymentMethod   string    `gorm:"column:payment_method" json:"Payment_Method"`
	DateRequested   time.Time `gorm:"column:date_requested" json:"Date_Requested"`
	Status          string    `gorm:"column:status" json:"Status"`
	ScheduledPickUp time.Time `gorm:"column:scheduled_pick_up" json:"Scheduled_Pick_Up"`
	TotalAmount     float64   `gorm:"column:total_amount" json:"Total_Amount"`
}

type HistoryDoc struct {
	RequestDocID int64   `json:"Request_Doc_ID"`
	DocumentID   int64   `json:"Document_ID"`
	DocumentType string  `json:"Document_Type"`
	Quantity     int     `json:"Quantity"`
	UnitPrice    float64 `json:"Unit_Price"`
	Subtotal     float64 `json:"Subtotal"`
}

type RequestGroup struct {
	RequestID       int64        `json:"Request_ID"`
	PaymentMethod   string       `json:"Payment_Method"`
	DateRequested   time.Time    `json:"Date_Requested"`
	Status          string       `json:"Status"`
	ScheduledPickUp time.Time    `json:"Scheduled_Pick_Up"`
	Total           float64      `json:"Total"`
	Documents       []HistoryDoc `json:"documents"`
}

// GroupHistoryRows folds flat join rows into request → documents groups.
// Pure: the same input always yields the same output, request order follows
// first appearance, request-level fields come from each group's first row,
// and Total accumulates the group's subtotals.
func GroupHistoryRows(rows []HistoryRow) []RequestGroup {
	groups := make([]RequestGroup, 0)
	index := make(map[int64]int)

	for _, row := range rows {
		i, seen := index[row.RequestID]
		if !seen {
			groups = append(groups, RequestGroup{
				RequestID:       row.RequestID,
				PaymentMethod:   row.PaymentMethod,
				DateRequested:   row.DateRequested,
				Status:          row.Status,
				ScheduledPickUp: row.ScheduledPickUp,
			})
			i = len(groups) - 1
			index[row.RequestID] = i
		}

		groups[i].Documents = append(groups[i].Documents, HistoryDoc{
			RequestDocID: row.RequestDocID,
			DocumentID:   row.DocumentID,
			DocumentType: row.DocumentType,
			Quantity:     row.Quantity,
			UnitPrice:    row.UnitPrice,
			Subtotal:     row.Subtotal,
		})
		groups[i].Total += row.Subtotal
	}

	return groups
}
