// Package sheetstest provides an in-memory stand-in for the spreadsheet
// scripting endpoint, mirroring its protocol quirks: success with empty data
// for unknown sheets, idempotent inserts on duplicate ids, column-addressed
// partial updates and success:false for missing records.
package sheetstest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

type sheet struct {
	headers []string
	rows    []map[string]any
}

// Server is a fake record store backed by maps.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	sheets map[string]*sheet
	calls  map[string]int  // per-action call counts
	failOn map[string]bool // "action/sheetName" -> force failure
}

func NewServer() *Server {
	s := &Server{
		sheets: make(map[string]*sheet),
		calls:  make(map[string]int),
		failOn: make(map[string]bool),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// FailOn makes every subsequent call of the given action against the given
// sheet answer success:false.
func (s *Server) FailOn(action, sheetName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[action+"/"+sheetName] = true
}

// Calls reports how many requests of the given action were handled.
func (s *Server) Calls(action string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[action]
}

// Rows returns a copy of the stored rows of a sheet.
func (s *Server) Rows(sheetName string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.sheets[sheetName]
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(sh.rows))
	for _, r := range sh.rows {
		cp := make(map[string]any, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out
}

// Seed replaces the contents of a sheet.
func (s *Server) Seed(sheetName string, rows ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheetName] = &sheet{rows: rows}
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Method == http.MethodGet {
		s.handleSelect(w, r)
		return
	}

	var body struct {
		Action    string         `json:"action"`
		SheetName string         `json:"sheetName"`
		ID        string         `json:"id"`
		Headers   []string       `json:"headers"`
		Data      map[string]any `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, map[string]any{"success": false, "message": err.Error()})
		return
	}

	s.calls[body.Action]++
	if s.failOn[body.Action+"/"+body.SheetName] {
		writeJSON(w, map[string]any{"success": false, "message": "forced failure"})
		return
	}

	switch body.Action {
	case "insert":
		s.handleInsert(w, body.SheetName, body.Data)
	case "update":
		s.handleUpdate(w, body.SheetName, body.ID, body.Data)
	case "delete":
		s.handleDelete(w, body.SheetName, body.ID)
	case "createSheet":
		s.handleCreateSheet(w, body.SheetName, body.Headers)
	default:
		writeJSON(w, map[string]any{"success": false, "message": "Invalid action"})
	}
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	s.calls["select"]++
	sheetName := r.URL.Query().Get("sheetName")
	if s.failOn["select/"+sheetName] {
		writeJSON(w, map[string]any{"success": false, "message": "forced failure"})
		return
	}

	sh, ok := s.sheets[sheetName]
	if !ok {
		writeJSON(w, map[string]any{"success": true, "data": []map[string]any{}})
		return
	}

	rows := sh.rows
	if id := r.URL.Query().Get("id"); id != "" {
		filtered := []map[string]any{}
		for _, row := range rows {
			if rowID(row) == id {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	writeJSON(w, map[string]any{"success": true, "data": rows})
}

func (s *Server) handleInsert(w http.ResponseWriter, sheetName string, data map[string]any) {
	sh, ok := s.sheets[sheetName]
	if !ok {
		sh = &sheet{}
		s.sheets[sheetName] = sh
	}

	if id := rowID(data); id != "" {
		for _, row := range sh.rows {
			if rowID(row) == id {
				// Duplicate id: no-op success, like the real endpoint.
				writeJSON(w, map[string]any{"success": true, "message": "Record already exists"})
				return
			}
		}
	}

	sh.rows = append(sh.rows, data)
	writeJSON(w, map[string]any{"success": true, "message": "Data inserted successfully"})
}

func (s *Server) handleUpdate(w http.ResponseWriter, sheetName, id string, data map[string]any) {
	sh, ok := s.sheets[sheetName]
	if !ok {
		writeJSON(w, map[string]any{"success": false, "message": "Sheet not found"})
		return
	}

	for _, row := range sh.rows {
		if rowID(row) == id {
			for k, v := range data {
				row[k] = v
			}
			writeJSON(w, map[string]any{"success": true, "message": "Data updated successfully"})
			return
		}
	}
	writeJSON(w, map[string]any{"success": false, "message": "Record not found"})
}

func (s *Server) handleDelete(w http.ResponseWriter, sheetName, id string) {
	sh, ok := s.sheets[sheetName]
	if !ok {
		writeJSON(w, map[string]any{"success": false, "message": "Sheet not found"})
		return
	}

	for i, row := range sh.rows {
		if rowID(row) == id {
			sh.rows = append(sh.rows[:i], sh.rows[i+1:]...)
			writeJSON(w, map[string]any{"success": true, "message": "Data deleted successfully"})
			return
		}
	}
	writeJSON(w, map[string]any{"success": false, "message": "Record not found"})
}

func (s *Server) handleCreateSheet(w http.ResponseWriter, sheetName string, headers []string) {
	if _, ok := s.sheets[sheetName]; ok {
		writeJSON(w, map[string]any{"success": true, "message": "Sheet already exists"})
		return
	}
	s.sheets[sheetName] = &sheet{headers: headers}
	writeJSON(w, map[string]any{"success": true, "message": "Sheet created successfully"})
}

func rowID(row map[string]any) string {
	id, _ := row["id"].(string)
	return id
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
