package source

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/models/store"
	"github.com/de-tools/ledger-atlas/pkg/store/client"
)

type mockGetter struct {
	mock.Mock
}

func (m *mockGetter) Get(ctx context.Context, path string, query url.Values) (*client.Response, error) {
	args := m.Called(ctx, path, query)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func march(t *testing.T) domain.DateRange {
	t.Helper()
	rng, err := domain.NewDateRange(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return rng
}

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func TestFetchAll_OneSourceNotFound(t *testing.T) {
	var queries []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case store.SourceRent.Path():
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail": "Not found."}`))
		case store.SourceCustomers.Path():
			_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 1, "full_name": "Alice"}]}`))
		case store.SourceExpenditures.Path():
			queries = append(queries, r.URL.Query())
			_, _ = w.Write([]byte(`[{"id": 1, "issue_date": "2024-03-02", "amount": "10"}, null]`))
		default:
			_, _ = w.Write([]byte(`[{"id": 1, "date": "2024-03-02"}]`))
		}
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	f := NewFetcher(c, nil, Config{})

	res := f.FetchAll(testContext(), march(t))

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "/rent/")
	assert.Contains(t, res.Errors[0], "not found")

	assert.Empty(t, res.Snapshot.Rent)
	assert.Len(t, res.Snapshot.Expenditures, 1)
	assert.Len(t, res.Snapshot.MiscIncome, 1)
	assert.Len(t, res.Snapshot.Services, 1)
	assert.Len(t, res.Snapshot.Salaries, 1)
	assert.Len(t, res.Snapshot.Agreements, 1)
	assert.Len(t, res.Snapshot.UnitBills, 1)
	assert.Len(t, res.Snapshot.UnitAdjustments, 1)
	require.Len(t, res.Snapshot.Customers, 1)
	assert.Equal(t, "Alice", res.Snapshot.Customers[0].FullName)

	require.Len(t, queries, 1)
	assert.Equal(t, "10000", queries[0].Get("page_size"))
	assert.Equal(t, "2024-01-30", queries[0].Get("start_date"))
	assert.Equal(t, "2024-05-01", queries[0].Get("end_date"))
}

func TestFetchAll_ErrorsFollowRegistryOrder(t *testing.T) {
	g := &mockGetter{}
	g.On("Get", mock.Anything, store.SourceUnitAdjustments.Path(), mock.Anything).
		Return(nil, &client.StatusError{StatusCode: http.StatusInternalServerError})
	g.On("Get", mock.Anything, store.SourceExpenditures.Path(), mock.Anything).
		Return(nil, &client.StatusError{StatusCode: http.StatusBadRequest, Body: []byte(`{"message": "bad date"}`)})
	g.On("Get", mock.Anything, mock.Anything, mock.Anything).
		Return(&client.Response{StatusCode: http.StatusOK, Body: []byte(`[]`)}, nil)

	res := NewFetcher(g, nil, Config{PageSize: 50}).FetchAll(testContext(), march(t))

	assert.Equal(t, []string{
		"failed to fetch /Expenditure/: bad date",
		"failed to fetch /units/finances/: server returned 500 Internal Server Error",
	}, res.Errors)
	g.AssertNumberOfCalls(t, "Get", len(store.Sources))
}

func TestFetcher_OverFetchWindow(t *testing.T) {
	tests := []struct {
		name          string
		overFetchDays int
		start, end    string
	}{
		{name: "zero takes the default", overFetchDays: 0, start: "2024-01-30", end: "2024-05-01"},
		{name: "explicit", overFetchDays: 2, start: "2024-02-28", end: "2024-04-02"},
		{name: "negative disables widening", overFetchDays: -1, start: "2024-03-01", end: "2024-03-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewFetcher(nil, nil, Config{OverFetchDays: tt.overFetchDays}).query(march(t))
			assert.Equal(t, strconv.Itoa(DefaultPageSize), q.Get("page_size"))
			assert.Equal(t, tt.start, q.Get("start_date"))
			assert.Equal(t, tt.end, q.Get("end_date"))
		})
	}
}

func TestFetchSource_Diagnostics(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "not found", err: &client.StatusError{StatusCode: 404}, expected: "not found"},
		{name: "detail", err: &client.StatusError{StatusCode: 403, Body: []byte(`{"detail": "Authentication credentials were not provided."}`)}, expected: "Authentication credentials were not provided."},
		{name: "string body", err: &client.StatusError{StatusCode: 500, Body: []byte(`"database is down"`)}, expected: "database is down"},
		{name: "plain text body", err: &client.StatusError{StatusCode: 502, Body: []byte("upstream unavailable\n")}, expected: "upstream unavailable"},
		{name: "network", err: &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}}, expected: "network error"},
		{name: "cancelled", err: context.Canceled, expected: "request cancelled"},
		{name: "generic", err: errors.New("boom"), expected: "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &mockGetter{}
			g.On("Get", mock.Anything, store.SourceSalaries.Path(), mock.Anything).Return(nil, tt.err)

			items, diag := NewFetcher(g, nil, Config{}).FetchSource(testContext(), store.SourceSalaries, march(t))

			assert.NotNil(t, items)
			assert.Empty(t, items)
			assert.Equal(t, "failed to fetch /staff/salaries/: "+tt.expected, diag)
		})
	}
}

func TestDecodeCollection(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		count   int
		wantErr bool
	}{
		{name: "bare array", body: `[{"id": 1}, {"id": 2}]`, count: 2},
		{name: "envelope", body: `{"next": null, "results": [{"id": 1}]}`, count: 1},
		{name: "envelope without results", body: `{"detail": "ok"}`, count: 0},
		{name: "scalar", body: `42`, count: 0},
		{name: "empty body", body: ``, count: 0},
		{name: "invalid json", body: `<html>`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeCollection([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.count)
		})
	}
}

func TestFetchSource_InvalidBody(t *testing.T) {
	g := &mockGetter{}
	g.On("Get", mock.Anything, mock.Anything, mock.Anything).
		Return(&client.Response{StatusCode: http.StatusOK, Body: []byte(`<html>oops</html>`)}, nil)

	items, diag := NewFetcher(g, nil, Config{}).FetchSource(testContext(), store.SourceRent, march(t))

	assert.Empty(t, items)
	assert.True(t, strings.HasSuffix(diag, "invalid response body"))
}

func TestDecodeRecords_DropsMismatchedShapes(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"id": 1, "customers_list": {"c1": {"taken": 5}}}`),
		json.RawMessage(`{"id": 2, "customers_list": [1, 2]}`),
		json.RawMessage(`"not a record"`),
	}

	got := decodeRecords[store.Charge](testContext(), nil, store.SourceRent, raw)

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID.String())
}
