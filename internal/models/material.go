package models

import (
	"fmt"
	"time"

	"material-requisition-api-server/internal/sheets"
)

// Material is one catalog entry. Stock numbers are informational: the
// requisition lifecycle never adjusts them.
type Material struct {
	ID            string    `json:"id"`
	MaterialCode  string    `json:"material_code"`
	MaterialName  string    `json:"material_name"`
	Category      string    `json:"category"`
	Unit          string    `json:"unit"`
	StockQuantity int       `json:"stock_quantity"`
	MinStock      int       `json:"min_stock"`
	CreatedDate   time.Time `json:"created_date"`
	UpdatedDate   time.Time `json:"updated_date"`
}

// IsLowStock reports whether the material is at or below its minimum stock
// threshold. Equality counts as low.
func (m Material) IsLowStock() bool {
	return m.StockQuantity <= m.MinStock
}

// MaterialFromRow converts an untyped store row into a Material.
func MaterialFromRow(row sheets.Row) (Material, error) {
	qty, err := row.Int("stock_quantity")
	if err != nil {
		return Material{}, fmt.Errorf("material %s: %w", row.String("id"), err)
	}
	minStock, err := row.Int("min_stock")
	if err != nil {
		return Material{}, fmt.Errorf("material %s: %w", row.String("id"), err)
	}
	created, err := parseTimestamp(row.String("created_date"))
	if err != nil {
		return Material{}, fmt.Errorf("material %s: bad created_date: %w", row.String("id"), err)
	}
	updated, err := parseTimestamp(row.String("updated_date"))
	if err != nil {
		return Material{}, fmt.Errorf("material %s: bad updated_date: %w", row.String("id"), err)
	}

	return Material{
		ID:            row.String("id"),
		MaterialCode:  row.String("material_code"),
		MaterialName:  row.String("material_name"),
		Category:      row.String("category"),
		Unit:          row.String("unit"),
		StockQuantity: qty,
		MinStock:      minStock,
		CreatedDate:   created,
		UpdatedDate:   updated,
	}, nil
}

// ToRow converts the material back into a store row.
func (m Material) ToRow() sheets.Row {
	return sheets.Row{
		"id":             m.ID,
		"material_code":  m.MaterialCode,
		"material_name":  m.MaterialName,
		"category":       m.Category,
		"unit":           m.Unit,
		"stock_quantity": m.StockQuantity,
		"min_stock":      m.MinStock,
		"created_date":   formatTimestamp(m.CreatedDate),
		"updated_date":   formatTimestamp(m.UpdatedDate),
	}
}
