package models

import (
	"fmt"
	"time"

	"material-requisition-api-server/internal/sheets"
)

// Department and Category are plain lookup records used to populate
// selection lists. Nothing enforces referential integrity against them.

type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Manager     string    `json:"manager"`
	CreatedDate time.Time `json:"created_date"`
}

func DepartmentFromRow(row sheets.Row) (Department, error) {
	created, err := parseTimestamp(row.String("created_date"))
	if err != nil {
		return Department{}, fmt.Errorf("department %s: bad created_date: %w", row.String("id"), err)
	}
	return Department{
		ID:          row.String("id"),
		Name:        row.String("name"),
		Code:        row.String("code"),
		Manager:     row.String("manager"),
		CreatedDate: created,
	}, nil
}

func (d Department) ToRow() sheets.Row {
	return sheets.Row{
		"id":           d.ID,
		"name":         d.Name,
		"code":         d.Code,
		"manager":      d.Manager,
		"created_date": formatTimestamp(d.CreatedDate),
	}
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedDate time.Time `json:"created_date"`
}

func CategoryFromRow(row sheets.Row) (Category, error) {
	created, err := parseTimestamp(row.String("created_date"))
	if err != nil {
		return Category{}, fmt.Errorf("category %s: bad created_date: %w", row.String("id"), err)
	}
	return Category{
		ID:          row.String("id"),
		Name:        row.String("name"),
		Description: row.String("description"),
		CreatedDate: created,
	}, nil
}

func (c Category) ToRow() sheets.Row {
	return sheets.Row{
		"id":           c.ID,
		"name":         c.Name,
		"description":  c.Description,
		"created_date": formatTimestamp(c.CreatedDate),
	}
}
