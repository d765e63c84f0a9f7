package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type fakeGoogle struct {
	mu       sync.Mutex
	lookups  int
	appends  []map[string]interface{}
	ranges   []string
	queries  []string
	files    string
	failWith int
}

func (f *fakeGoogle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/files":
		f.lookups++
		f.queries = append(f.queries, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(f.files))
	case strings.HasSuffix(r.URL.Path, ":append"):
		if f.failWith != 0 {
			w.WriteHeader(f.failWith)
			_, _ = w.Write([]byte(`{"error":{"code":503,"message":"unavailable"}}`))
			return
		}
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.appends = append(f.appends, body)
		f.ranges = append(f.ranges, r.URL.Path+"?"+r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-123","updates":{"updatedRows":1}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestAppender(t *testing.T, fake *fakeGoogle) *Appender {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	a, err := NewAppenderWithOptions(context.Background(), "Streamlit_login_track", "hindi_news_app",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return a
}

func TestAppendRow(t *testing.T) {
	fake := &fakeGoogle{files: `{"files":[{"id":"sheet-123","name":"Streamlit_login_track"}]}`}
	a := newTestAppender(t, fake)
	ctx := context.Background()

	require.NoError(t, a.AppendRow(ctx, []interface{}{"editor", "2024-01-16 01:30:00"}))
	require.NoError(t, a.AppendRow(ctx, []interface{}{"analyst", "2024-01-16 01:31:00"}))

	fake.mu.Lock()
	defer fake.mu.Unlock()

	assert.Equal(t, 1, fake.lookups, "spreadsheet id is cached")
	assert.Contains(t, fake.queries[0], "name = 'Streamlit_login_track'")
	require.Len(t, fake.appends, 2)
	assert.Equal(t, []interface{}{[]interface{}{"editor", "2024-01-16 01:30:00"}}, fake.appends[0]["values"])
	assert.Contains(t, fake.ranges[0], "sheet-123")
	assert.Contains(t, fake.ranges[0], "'hindi_news_app'")
	assert.Contains(t, fake.ranges[0], "valueInputOption=RAW")
}

func TestAppendRowSpreadsheetMissing(t *testing.T) {
	fake := &fakeGoogle{files: `{"files":[]}`}
	a := newTestAppender(t, fake)

	err := a.AppendRow(context.Background(), []interface{}{"editor", "2024-01-16 01:30:00"})
	assert.ErrorIs(t, err, ErrSpreadsheetNotFound)
}

func TestAppendRowRemoteError(t *testing.T) {
	fake := &fakeGoogle{
		files:    `{"files":[{"id":"sheet-123"}]}`,
		failWith: http.StatusServiceUnavailable,
	}
	a := newTestAppender(t, fake)

	err := a.AppendRow(context.Background(), []interface{}{"editor", "2024-01-16 01:30:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Streamlit_login_track/hindi_news_app")
}

func TestNewAppenderRejectsBadCredential(t *testing.T) {
	_, err := NewAppender(context.Background(), []byte(`{"type":"authorized_user"}`), "doc", "sheet")
	assert.Error(t, err)
}

func TestQuoteSheet(t *testing.T) {
	assert.Equal(t, "'hindi_news_app'", quoteSheet("hindi_news_app"))
	assert.Equal(t, "'it''s'", quoteSheet("it's"))
}

func TestDriveNameQueryEscaping(t *testing.T) {
	assert.Equal(t,
		"name = 'Streamlit_login_track' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		driveNameQuery("Streamlit_login_track"))

	assert.Contains(t, driveNameQuery(`it's`), `name = 'it\'s'`)
	assert.Contains(t, driveNameQuery(`logins\2024`), `name = 'logins\\2024'`)
	// backslash first, so the escape added for the quote is not doubled
	assert.Contains(t, driveNameQuery(`a\'b`), `name = 'a\\\'b'`)
}

func TestAppendRowLooksUpEscapedName(t *testing.T) {
	fake := &fakeGoogle{files: `{"files":[{"id":"sheet-123"}]}`}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	a, err := NewAppenderWithOptions(context.Background(), `logins\2024`, "hindi_news_app",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	require.NoError(t, a.AppendRow(context.Background(), []interface{}{"editor", "2024-01-16 01:30:00"}))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Contains(t, fake.queries[0], `name = 'logins\\2024'`)
}
