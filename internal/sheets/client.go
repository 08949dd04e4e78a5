package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Client talks to the spreadsheet scripting endpoint. Every collection lives
// as a named sheet; rows are keyed by an "id" column. The endpoint reports
// failures in the JSON body, the HTTP status is always 200.
type Client struct {
	scriptURL  string
	httpClient *http.Client
}

func NewClient(scriptURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{scriptURL: scriptURL, httpClient: httpClient}
}

// StoreError is a logical failure reported by the store (success:false),
// as opposed to a transport failure.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("sheets: store reported failure: %s", e.Message)
}

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    []Row  `json:"data"`
}

// Select fetches every row of a sheet. An unknown sheet is not an error, the
// store answers success with empty data.
func (c *Client) Select(ctx context.Context, sheetName string) ([]Row, error) {
	return c.selectRows(ctx, sheetName, "")
}

// SelectByID fetches the rows whose id column matches id (zero or one row in
// practice, the store never enforces uniqueness).
func (c *Client) SelectByID(ctx context.Context, sheetName, id string) ([]Row, error) {
	return c.selectRows(ctx, sheetName, id)
}

func (c *Client) selectRows(ctx context.Context, sheetName, id string) ([]Row, error) {
	params := url.Values{}
	params.Set("action", "select")
	params.Set("sheetName", sheetName)
	if id != "" {
		params.Set("id", id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.scriptURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []Row{}, nil
	}
	return resp.Data, nil
}

// Insert appends a row. The store treats a duplicate id as an idempotent
// no-op and still reports success, so callers may safely re-send.
func (c *Client) Insert(ctx context.Context, sheetName string, data Row) error {
	return c.post(ctx, map[string]any{
		"action":    "insert",
		"sheetName": sheetName,
		"data":      data,
	})
}

// Update writes only the named columns of the first row whose id matches.
// A missing sheet, id column or row comes back as a StoreError.
func (c *Client) Update(ctx context.Context, sheetName, id string, data Row) error {
	return c.post(ctx, map[string]any{
		"action":    "update",
		"sheetName": sheetName,
		"id":        id,
		"data":      data,
	})
}

// Delete removes the first row whose id matches.
func (c *Client) Delete(ctx context.Context, sheetName, id string) error {
	return c.post(ctx, map[string]any{
		"action":    "delete",
		"sheetName": sheetName,
		"id":        id,
	})
}

// CreateSheet creates a sheet with the given header row. Idempotent: an
// existing sheet is a no-op success.
func (c *Client) CreateSheet(ctx context.Context, sheetName string, headers []string) error {
	return c.post(ctx, map[string]any{
		"action":    "createSheet",
		"sheetName": sheetName,
		"headers":   headers,
	})
}

func (c *Client) post(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) (*apiResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets: request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("sheets: decoding response: %w", err)
	}
	if !parsed.Success {
		return nil, &StoreError{Message: parsed.Message}
	}
	return &parsed, nil
}
