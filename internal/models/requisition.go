package models

import (
	"encoding/json"
	"fmt"
	"time"

	"material-requisition-api-server/internal/sheets"
)

// Status is the requisition lifecycle state. Pending requisitions can be
// approved or rejected exactly once; both outcomes are terminal. "completed"
// exists in the schema but no transition reaches it.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// ParseStatus validates a raw status value from the store.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown requisition status %q", s)
	}
}

// LineItem is one requested material within a requisition. The material
// fields are a denormalized snapshot taken at submission time, not a live
// reference into the catalog.
type LineItem struct {
	MaterialID   string `json:"material_id"`
	MaterialCode string `json:"material_code"`
	MaterialName string `json:"material_name"`
	Unit         string `json:"unit"`
	Quantity     int    `json:"quantity"`
	Note         string `json:"note"`
}

// Requisition is a request to draw materials from stock.
type Requisition struct {
	ID              string     `json:"id"`
	RequisitionCode string     `json:"requisition_code"`
	Date            string     `json:"date"` // requester-entered date, YYYY-MM-DD
	Requester       string     `json:"requester"`
	Department      string     `json:"department"`
	Purpose         string     `json:"purpose"`
	Status          Status     `json:"status"`
	Items           []LineItem `json:"items"`
	CreatedDate     time.Time  `json:"created_date"`
	ApprovedDate    time.Time  `json:"approved_date"`
	ApprovedBy      string     `json:"approved_by"`
	RejectReason    string     `json:"reject_reason"`
}

// GenerateRequisitionCode builds the human-readable code for a submission at
// instant t: "REQ" + YYMMDD + the last four digits of the epoch milliseconds.
// Always 13 characters. Collisions within the same sub-second window are
// possible and not handled.
func GenerateRequisitionCode(t time.Time) string {
	return fmt.Sprintf("REQ%s%04d", t.Format("060102"), t.UnixMilli()%10000)
}

// NewRequisitionID builds the record id for a submission at instant t.
func NewRequisitionID(t time.Time) string {
	return fmt.Sprintf("req_%d", t.UnixMilli())
}

// EncodeLineItems serializes line items into the opaque blob stored in the
// "materials" column. The blob format stays at this boundary.
func EncodeLineItems(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeLineItems parses the stored blob. An empty cell means no items.
func DecodeLineItems(blob string) ([]LineItem, error) {
	if blob == "" {
		return []LineItem{}, nil
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return nil, fmt.Errorf("decoding line items: %w", err)
	}
	return items, nil
}

// RequisitionFromRow converts an untyped store row into a Requisition,
// decoding the embedded line-item blob.
func RequisitionFromRow(row sheets.Row) (Requisition, error) {
	id := row.String("id")

	status, err := ParseStatus(row.String("status"))
	if err != nil {
		return Requisition{}, fmt.Errorf("requisition %s: %w", id, err)
	}
	items, err := DecodeLineItems(row.String("materials"))
	if err != nil {
		return Requisition{}, fmt.Errorf("requisition %s: %w", id, err)
	}
	created, err := parseTimestamp(row.String("created_date"))
	if err != nil {
		return Requisition{}, fmt.Errorf("requisition %s: bad created_date: %w", id, err)
	}
	approved, err := parseTimestamp(row.String("approved_date"))
	if err != nil {
		return Requisition{}, fmt.Errorf("requisition %s: bad approved_date: %w", id, err)
	}

	return Requisition{
		ID:              id,
		RequisitionCode: row.String("requisition_code"),
		Date:            row.String("date"),
		Requester:       row.String("requester"),
		Department:      row.String("department"),
		Purpose:         row.String("purpose"),
		Status:          status,
		Items:           items,
		CreatedDate:     created,
		ApprovedDate:    approved,
		ApprovedBy:      row.String("approved_by"),
		RejectReason:    row.String("reject_reason"),
	}, nil
}

// ToRow converts the requisition back into a store row, encoding the
// line-item blob.
func (r Requisition) ToRow() (sheets.Row, error) {
	blob, err := EncodeLineItems(r.Items)
	if err != nil {
		return nil, err
	}
	return sheets.Row{
		"id":               r.ID,
		"requisition_code": r.RequisitionCode,
		"date":             r.Date,
		"requester":        r.Requester,
		"department":       r.Department,
		"purpose":          r.Purpose,
		"status":           string(r.Status),
		"materials":        blob,
		"created_date":     formatTimestamp(r.CreatedDate),
		"approved_date":    formatTimestamp(r.ApprovedDate),
		"approved_by":      r.ApprovedBy,
		"reject_reason":    r.RejectReason,
	}, nil
}
