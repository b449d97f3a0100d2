// Package ledgerapi is an HTTP client for the cash drawer ledger API.
// Error responses are mapped back onto the apperrors sentinels so callers can
// branch with errors.Is and errors.As exactly as they would in-process.
package ledgerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the ledger.
type APIError struct {
	Status    int
	Code      string
	Message   string
	SessionID string
	kind      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ledger api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap exposes the error kind named by Code.
func (e *APIError) Unwrap() error { return e.kind }

// Client talks to /api/v1 with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the API rooted at baseURL (for example http://localhost:8080/api/v1).
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OpenSession opens a session. An empty employeeID opens one for the token's owner.
func (c *Client) OpenSession(ctx context.Context, employeeID string, openingBalance decimal.Decimal) (*dto.CashSessionResponse, error) {
	req := dto.OpenSessionRequest{EmployeeID: employeeID, OpeningBalance: &openingBalance}
	var resp dto.CashSessionResponse
	if err := c.do(ctx, http.MethodPost, "/cash-sessions", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSession fetches a session and its entries.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*dto.CashSessionResponse, error) {
	var resp dto.CashSessionResponse
	if err := c.do(ctx, http.MethodGet, "/cash-sessions/"+url.PathEscape(sessionID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOpenSession returns the employee's open session, or nil when there is none.
func (c *Client) GetOpenSession(ctx context.Context, employeeID string) (*dto.CashSessionResponse, error) {
	query := url.Values{}
	if employeeID != "" {
		query.Set("employeeID", employeeID)
	}
	var resp dto.OpenSessionLookupResponse
	if err := c.do(ctx, http.MethodGet, "/cash-sessions/open", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Session, nil
}

// ListSessions returns one page of session history.
func (c *Client) ListSessions(ctx context.Context, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error) {
	query := url.Values{}
	if params.EmployeeID != nil {
		query.Set("employeeID", *params.EmployeeID)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.NextToken != nil {
		query.Set("nextToken", *params.NextToken)
	}
	var resp dto.ListSessionsResponse
	if err := c.do(ctx, http.MethodGet, "/cash-sessions", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSummary returns the running reconciliation summary of a session.
func (c *Client) GetSummary(ctx context.Context, sessionID string) (*dto.ReconciliationSummaryResponse, error) {
	var resp dto.ReconciliationSummaryResponse
	if err := c.do(ctx, http.MethodGet, "/cash-sessions/"+url.PathEscape(sessionID)+"/summary", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CloseSession reconciles and closes a session.
func (c *Client) CloseSession(ctx context.Context, sessionID string, closingBalance decimal.Decimal, note *string) (*dto.CloseSessionResponse, error) {
	req := dto.CloseSessionRequest{ClosingBalance: &closingBalance, Note: note}
	var resp dto.CloseSessionResponse
	if err := c.do(ctx, http.MethodPost, "/cash-sessions/"+url.PathEscape(sessionID)+"/close", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddEntry records income or expense against a session.
func (c *Client) AddEntry(ctx context.Context, sessionID string, req dto.AddEntryRequest) (*dto.LedgerEntryResponse, error) {
	var resp dto.LedgerEntryResponse
	if err := c.do(ctx, http.MethodPost, "/cash-sessions/"+url.PathEscape(sessionID)+"/entries", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListEntries lists a session's entries, optionally filtered by kind.
func (c *Client) ListEntries(ctx context.Context, sessionID string, kind *domain.EntryKind) (*dto.ListEntriesResponse, error) {
	query := url.Values{}
	if kind != nil {
		query.Set("kind", string(*kind))
	}
	var resp dto.ListEntriesResponse
	if err := c.do(ctx, http.MethodGet, "/cash-sessions/"+url.PathEscape(sessionID)+"/entries", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateEntry edits an entry of an open session.
func (c *Client) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest) (*dto.LedgerEntryResponse, error) {
	var resp dto.LedgerEntryResponse
	if err := c.do(ctx, http.MethodPut, "/entries/"+url.PathEscape(entryID), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteEntry deletes an entry of an open session.
func (c *Client) DeleteEntry(ctx context.Context, entryID string) error {
	return c.do(ctx, http.MethodDelete, "/entries/"+url.PathEscape(entryID), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("Ledger API call", slog.String("method", method), slog.String("path", path),
		slog.Int("status", resp.StatusCode), slog.Duration("latency", time.Since(start)))

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body dto.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
		apiErr.SessionID = body.SessionID
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	apiErr.kind = kindOf(apiErr)
	return apiErr
}

// kindOf maps an error code, falling back to the status, onto an apperrors kind.
func kindOf(e *APIError) error {
	switch e.Code {
	case dto.CodeAlreadyOpen:
		return apperrors.NewAlreadyOpenError("", e.SessionID)
	case dto.CodeAlreadyClosed:
		return apperrors.ErrAlreadyClosed
	case dto.CodeSessionClosed:
		return apperrors.ErrSessionClosed
	case dto.CodeValidation:
		return apperrors.ErrValidation
	case dto.CodeNotFound:
		return apperrors.ErrNotFound
	case dto.CodeForbidden:
		return apperrors.ErrForbidden
	case dto.CodeUnauthorized:
		return apperrors.ErrUnauthorized
	}
	switch e.Status {
	case http.StatusBadRequest:
		return apperrors.ErrValidation
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case http.StatusForbidden:
		return apperrors.ErrForbidden
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	}
	return apperrors.ErrInternal
}

// IsTransient reports whether err is worth retrying later: network failures,
// rate limiting and server errors.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled)
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }
