// Package client is the front-end side of the trip tracker: an HTTP client
// for the REST API, a local cache of the last good document, and a Store that
// applies edits optimistically and rolls them back when the server refuses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trip_tracker/internal/itinerary"
	"trip_tracker/internal/models"
)

// Remote is the authoritative side the Store talks to.
type Remote interface {
	GetTripData(ctx context.Context) (*models.Trip, error)
	AddExpense(ctx context.Context, dayID string, e models.Expense) (models.Day, error)
	UpdateExpense(ctx context.Context, dayID string, ref itinerary.ExpenseRef, e models.Expense) (models.Day, error)
	DeleteExpense(ctx context.Context, dayID string, ref itinerary.ExpenseRef) (models.Expense, error)
	UpdateDay(ctx context.Context, dayID string, patch itinerary.DayPatch) (models.Day, error)
	AddDay(ctx context.Context, insertAfter string, fields itinerary.DayFields) (models.Day, error)
	DeleteDay(ctx context.Context, dayID string) (models.Day, error)
}

// APIError is a non-2xx answer. Message is the server's "error" string when
// the body carried one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error: status %d", e.Status)
}

// API calls the trip tracker REST endpoints under BaseURL + "/api".
type API struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPI creates a client for the server at baseURL (e.g. http://localhost:3000).
func NewAPI(baseURL string) *API {
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// BaseURL returns the server root this client talks to.
func (a *API) BaseURL() string {
	return a.baseURL
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do sends one request and returns the raw 2xx body.
func (a *API) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+"/api"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env envelope
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message = env.Error
		}
		return nil, apiErr
	}
	return raw, nil
}

// call sends a mutation and decodes the "data" member of the reply into out.
func (a *API) call(ctx context.Context, method, path string, body, out any) error {
	raw, err := a.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("JSON decode error: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("JSON decode error: %w", err)
	}
	return nil
}

func expensePath(dayID string, ref itinerary.ExpenseRef) string {
	return "/expenses/" + url.PathEscape(dayID) + "/" + url.PathEscape(ref.String())
}

// GetTripData fetches the whole document.
func (a *API) GetTripData(ctx context.Context) (*models.Trip, error) {
	raw, err := a.do(ctx, http.MethodGet, "/trip-data", nil)
	if err != nil {
		return nil, err
	}
	var trip models.Trip
	if err := json.Unmarshal(raw, &trip); err != nil {
		return nil, fmt.Errorf("JSON decode error: %w", err)
	}
	return &trip, nil
}

// GetSummary fetches the expense and phase overview.
func (a *API) GetSummary(ctx context.Context) (itinerary.Summary, error) {
	var s itinerary.Summary
	raw, err := a.do(ctx, http.MethodGet, "/summary", nil)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("JSON decode error: %w", err)
	}
	return s, nil
}

// AddExpense appends an expense to dayID.
func (a *API) AddExpense(ctx context.Context, dayID string, e models.Expense) (models.Day, error) {
	var day models.Day
	body := map[string]any{"item": e.Item, "amount": e.Amount}
	err := a.call(ctx, http.MethodPost, "/expenses/"+url.PathEscape(dayID), body, &day)
	return day, err
}

// UpdateExpense overwrites the referenced expense.
func (a *API) UpdateExpense(ctx context.Context, dayID string, ref itinerary.ExpenseRef, e models.Expense) (models.Day, error) {
	var day models.Day
	body := map[string]any{"item": e.Item, "amount": e.Amount}
	err := a.call(ctx, http.MethodPut, expensePath(dayID, ref), body, &day)
	return day, err
}

// DeleteExpense removes the referenced expense and returns it.
func (a *API) DeleteExpense(ctx context.Context, dayID string, ref itinerary.ExpenseRef) (models.Expense, error) {
	var removed models.Expense
	err := a.call(ctx, http.MethodDelete, expensePath(dayID, ref), nil, &removed)
	return removed, err
}

// UpdateDay sends a day patch.
func (a *API) UpdateDay(ctx context.Context, dayID string, patch itinerary.DayPatch) (models.Day, error) {
	var day models.Day
	err := a.call(ctx, http.MethodPut, "/days/"+url.PathEscape(dayID), patch, &day)
	return day, err
}

// AddDay inserts a day after insertAfter.
func (a *API) AddDay(ctx context.Context, insertAfter string, fields itinerary.DayFields) (models.Day, error) {
	var day models.Day
	body := map[string]any{"insertAfter": insertAfter, "day": fields}
	err := a.call(ctx, http.MethodPost, "/days", body, &day)
	return day, err
}

// DeleteDay removes dayID and returns it.
func (a *API) DeleteDay(ctx context.Context, dayID string) (models.Day, error) {
	var day models.Day
	err := a.call(ctx, http.MethodDelete, "/days/"+url.PathEscape(dayID), nil, &day)
	return day, err
}
