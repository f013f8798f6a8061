package db

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/sidhant-sriv/home-maintenance-api/apperr"
)

// RESTStore is a client for the hosted backend's PostgREST table API
// (SUPABASE_URL/rest/v1). It authenticates with the service key, so row level
// security is bypassed and ownership is enforced by the handlers.
type RESTStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRESTStore(supabaseURL, apiKey string, client *http.Client) *RESTStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &RESTStore{
		baseURL: strings.TrimRight(supabaseURL, "/") + "/rest/v1/",
		apiKey:  apiKey,
		client:  client,
	}
}

// postgrestError is the error body PostgREST returns for non-2xx responses.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (s *RESTStore) Insert(ctx context.Context, table string, row Row) (Row, error) {
	rows, err := s.do(ctx, http.MethodPost, table, nil, row)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.Upstream(nil, "insert into %s returned no row", table)
	}
	return rows[0], nil
}

func (s *RESTStore) Select(ctx context.Context, table string, filter Filter) ([]Row, error) {
	if len(filter.Values) == 0 {
		return []Row{}, nil
	}
	return s.do(ctx, http.MethodGet, table, &filter, nil)
}

func (s *RESTStore) Update(ctx context.Context, table string, filter Filter, patch Row) ([]Row, error) {
	if len(filter.Values) == 0 {
		return []Row{}, nil
	}
	if len(patch) == 0 {
		return s.Select(ctx, table, filter)
	}
	return s.do(ctx, http.MethodPatch, table, &filter, patch)
}

func (s *RESTStore) Delete(ctx context.Context, table string, filter Filter) ([]Row, error) {
	if len(filter.Values) == 0 {
		return []Row{}, nil
	}
	return s.do(ctx, http.MethodDelete, table, &filter, nil)
}

func (s *RESTStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

func (s *RESTStore) do(ctx context.Context, method, table string, filter *Filter, body any) ([]Row, error) {
	op := strings.ToLower(method)
	endpoint, err := s.endpoint(table, filter)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to %s %s", op, table)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Upstream(err, "failed to encode %s row", table)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to %s %s", op, table)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to %s %s", op, table)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to read %s response", table)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		var pgErr postgrestError
		if json.Unmarshal(raw, &pgErr) != nil || pgErr.Message == "" {
			pgErr.Message = strings.TrimSpace(string(raw))
		}
		cause := fmt.Errorf("postgrest %d %s: %s", resp.StatusCode, pgErr.Code, pgErr.Message)
		return nil, apperr.Upstream(cause, "failed to %s %s", op, table)
	}

	rows := []Row{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return rows, nil
	}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, apperr.Upstream(err, "failed to decode %s response", table)
	}
	return rows, nil
}

func (s *RESTStore) endpoint(table string, filter *Filter) (string, error) {
	if !identPattern.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	q := url.Values{}
	q.Set("select", "*")
	if filter != nil {
		if !identPattern.MatchString(filter.Column) {
			return "", fmt.Errorf("invalid column name %q", filter.Column)
		}
		q.Set(filter.Column, filterExpr(*filter))
	}
	return s.baseURL + table + "?" + q.Encode(), nil
}

// filterExpr renders a PostgREST operator expression such as eq.abc or
// in.("a","b").
func filterExpr(f Filter) string {
	if !f.In {
		return "eq." + f.Values[0]
	}
	quoted := make([]string, len(f.Values))
	for i, v := range f.Values {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `"`, `\"`)
		quoted[i] = `"` + v + `"`
	}
	return "in.(" + strings.Join(quoted, ",") + ")"
}
