package models

import (
	"fmt"
	"time"

	"material-requisition-api-server/internal/sheets"
)

// User is an account from either the "admin" or the "users" collection.
// Records from the admin collection have no department. Password holds the
// bcrypt hash and is never serialized.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Password    string    `json:"-"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	Department  string    `json:"department,omitempty"`
	CreatedDate time.Time `json:"created_date"`
	LastLogin   time.Time `json:"last_login"`
}

// UserFromRow converts an untyped store row into a User.
func UserFromRow(row sheets.Row) (User, error) {
	created, err := parseTimestamp(row.String("created_date"))
	if err != nil {
		return User{}, fmt.Errorf("user %s: bad created_date: %w", row.String("id"), err)
	}
	lastLogin, err := parseTimestamp(row.String("last_login"))
	if err != nil {
		return User{}, fmt.Errorf("user %s: bad last_login: %w", row.String("id"), err)
	}

	return User{
		ID:          row.String("id"),
		Username:    row.String("username"),
		Password:    row.String("password"),
		FullName:    row.String("full_name"),
		Role:        row.String("role"),
		Department:  row.String("department"),
		CreatedDate: created,
		LastLogin:   lastLogin,
	}, nil
}

// ToRow converts the user back into a store row. includeDepartment is false
// for the admin collection, whose sheet has no department column.
func (u User) ToRow(includeDepartment bool) sheets.Row {
	row := sheets.Row{
		"id":           u.ID,
		"username":     u.Username,
		"password":     u.Password,
		"full_name":    u.FullName,
		"role":         u.Role,
		"created_date": formatTimestamp(u.CreatedDate),
		"last_login":   formatTimestamp(u.LastLogin),
	}
	if includeDepartment {
		row["department"] = u.Department
	}
	return row
}
