package sheets

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

	"github.com/Veraticus/sheetboard/internal/common"
)

// API is the transport contract consumed by the service layer.
type API interface {
	GetRange(ctx context.Context, rng string) ([][]string, error)
	UpdateRange(ctx context.Context, rng string, rows [][]string) error
	AppendRows(ctx context.Context, rng string, rows [][]string) error
	Metadata(ctx context.Context) (*Metadata, error)
	Mode() AuthMode
}

// Metadata describes the spreadsheet shape for configuration verification.
type Metadata struct {
	Title      string
	SheetNames []string
}

// Client talks to the Google Sheets values endpoints over raw HTTP.
type Client struct {
	httpClient *http.Client
	tokens     *TokenSource
	limiter    *rateLimiter
	logger     *slog.Logger
	config     Config
	mode       AuthMode
}

// NewClient validates the config and builds a client for the implied auth
// mode. In API-key mode no token source is constructed; the key rides on
// the query string of every request instead.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	c := &Client{
		config:     config,
		mode:       config.Mode(),
		httpClient: httpClient,
		limiter:    newRateLimiter(config.RequestsPerSecond),
		logger:     logger,
	}

	if c.mode == AuthModeServiceAccount {
		ts, err := NewTokenSource(config.ServiceAccountEmail, config.PrivateKey, config.TokenURL, httpClient)
		if err != nil {
			return nil, err
		}
		c.tokens = ts
	}

	return c, nil
}

// Mode reports the active auth mode.
func (c *Client) Mode() AuthMode {
	return c.mode
}

// GetRange fetches a range and returns its rows as strings. An absent
// values key (empty sheet) yields an empty slice.
func (c *Client) GetRange(ctx context.Context, rng string) ([][]string, error) {
	var rows [][]string

	err := c.withRetry(ctx, func() error {
		body, err := c.do(ctx, http.MethodGet, c.valuesURL(rng, nil), nil)
		if err != nil {
			return err
		}

		var payload struct {
			Values [][]any `json:"values"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return &Error{Kind: KindTransport, Message: "malformed values response", Err: err}
		}

		rows = stringifyRows(payload.Values)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// UpdateRange overwrites a range with the given rows.
func (c *Client) UpdateRange(ctx context.Context, rng string, rows [][]string) error {
	if c.mode == AuthModeAPIKey {
		return newError(KindPermission, "write requires a service account; the configured API key is read-only")
	}

	body, err := json.Marshal(valueRange(rng, rows))
	if err != nil {
		return fmt.Errorf("encoding update body: %w", err)
	}

	return c.withRetry(ctx, func() error {
		_, err := c.do(ctx, http.MethodPut, c.valuesURL(rng, url.Values{"valueInputOption": {"RAW"}}), body)
		return err
	})
}

// AppendRows appends rows after the last data row of the range's table.
// Appends are never retried: a timed-out append may have landed, and a
// blind retry would duplicate the row.
func (c *Client) AppendRows(ctx context.Context, rng string, rows [][]string) error {
	if c.mode == AuthModeAPIKey {
		return newError(KindPermission, "write requires a service account; the configured API key is read-only")
	}

	body, err := json.Marshal(valueRange(rng, rows))
	if err != nil {
		return fmt.Errorf("encoding append body: %w", err)
	}

	query := url.Values{
		"valueInputOption": {"RAW"},
		"insertDataOption": {"INSERT_ROWS"},
	}

	_, err = c.do(ctx, http.MethodPost, c.valuesURL(rng+":append", query), body)
	return err
}

// Metadata fetches the spreadsheet title and sheet tab names.
func (c *Client) Metadata(ctx context.Context) (*Metadata, error) {
	var meta *Metadata

	err := c.withRetry(ctx, func() error {
		endpoint := c.withAuthQuery(fmt.Sprintf("%s/%s?fields=properties.title,sheets.properties.title",
			c.config.BaseURL, url.PathEscape(c.config.SpreadsheetID)))

		body, err := c.do(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		var payload struct {
			Properties struct {
				Title string `json:"title"`
			} `json:"properties"`
			Sheets []struct {
				Properties struct {
					Title string `json:"title"`
				} `json:"properties"`
			} `json:"sheets"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return &Error{Kind: KindTransport, Message: "malformed metadata response", Err: err}
		}

		meta = &Metadata{Title: payload.Properties.Title}
		for _, s := range payload.Sheets {
			meta.SheetNames = append(meta.SheetNames, s.Properties.Title)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return meta, nil
}

// do performs one authenticated HTTP call and classifies any failure.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.mode == AuthModeServiceAccount {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransient, Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransient, Message: "reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests {
			c.limiter.recordRateLimit(retryAfter(resp))
		}
		cerr := classifyStatus(resp.StatusCode, strings.TrimSpace(string(respBody)), c.mode)
		c.logger.Debug("sheets request failed",
			"method", method,
			"status", resp.StatusCode,
			"kind", cerr.Kind.String())
		return nil, cerr
	}

	return respBody, nil
}

// withRetry applies the uniform retry policy. Classified errors decide
// their own retryability; auth and permission failures surface at once.
func (c *Client) withRetry(ctx context.Context, op func() error) error {
	opts := common.RetryOptions{
		MaxAttempts:  c.config.RetryAttempts + 1,
		InitialDelay: c.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	return common.WithRetry(ctx, func() error {
		err := op()
		if err == nil {
			return nil
		}

		var se *Error
		if errors.As(err, &se) && !se.Retryable() {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		return err
	}, opts)
}

// valuesURL builds the values endpoint URL for a range, merging the auth
// query parameter when in API-key mode.
func (c *Client) valuesURL(rng string, query url.Values) string {
	endpoint := fmt.Sprintf("%s/%s/values/%s",
		c.config.BaseURL,
		url.PathEscape(c.config.SpreadsheetID),
		url.PathEscape(rng))

	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	return c.withAuthQuery(endpoint)
}

// withAuthQuery appends the API key, correctly whether or not the URL
// already carries a query string.
func (c *Client) withAuthQuery(endpoint string) string {
	if c.mode != AuthModeAPIKey {
		return endpoint
	}

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + "key=" + url.QueryEscape(c.config.APIKey)
}

func valueRange(rng string, rows [][]string) map[string]any {
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	return map[string]any{
		"range":          rng,
		"majorDimension": "ROWS",
		"values":         values,
	}
}

// stringifyRows flattens the untyped JSON cells into strings; the store has
// no native types and nil cells become empty strings.
func stringifyRows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, cell := range row {
			switch v := cell.(type) {
			case nil:
				cells[j] = ""
			case string:
				cells[j] = v
			case float64:
				cells[j] = strconv.FormatFloat(v, 'f', -1, 64)
			case bool:
				if v {
					cells[j] = "TRUE"
				} else {
					cells[j] = "FALSE"
				}
			default:
				cells[j] = fmt.Sprint(v)
			}
		}
		rows[i] = cells
	}
	return rows
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}
