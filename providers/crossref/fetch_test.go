package crossref

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paper-rank/config"
)

const workJSON = `{
	"status": "ok",
	"message": {
		"DOI": "10.1038/s41586-020-2012-7",
		"title": ["A pneumonia outbreak associated with a new coronavirus of probable bat origin"],
		"container-title": ["Nature"],
		"ISSN": ["0028-0836", "1476-4687"],
		"created": {"date-parts": [[2020, 2, 3]]}
	}
}`

func newTestFetcher(baseURL string) *Fetcher {
	return NewFetcher(&config.Config{CrossRefBaseURL: baseURL}, zap.NewNop())
}

func TestFetchWork(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(workJSON))
	}))
	defer srv.Close()

	work, err := newTestFetcher(srv.URL).FetchWork(context.Background(), "10.1038/s41586-020-2012-7")
	require.NoError(t, err)

	assert.Equal(t, "/works/10.1038%2Fs41586-020-2012-7", gotPath)
	assert.Equal(t, "10.1038/s41586-020-2012-7", work.DOI)
	assert.Equal(t, "Nature", work.ContainerTitle)
	assert.Equal(t, []string{"0028-0836", "1476-4687"}, work.ISSNCandidates)
	assert.Equal(t, 2020, work.Year)
}

func TestFetchWorkSendsMailto(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(workJSON))
	}))
	defer srv.Close()

	f := NewFetcher(&config.Config{CrossRefBaseURL: srv.URL, CrossRefMailto: "lab@example.org"}, zap.NewNop())
	_, err := f.FetchWork(context.Background(), "10.1038/s41586-020-2012-7")
	require.NoError(t, err)
	assert.Equal(t, "mailto=lab%40example.org", gotQuery)
}

func TestFetchWorkNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Resource not found.", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchWork(context.Background(), "10.9999/nope")
	assert.ErrorIs(t, err, ErrWorkNotFound)
}

func TestFetchWorkServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchWork(context.Background(), "10.1000/xyz")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrWorkNotFound)
}

func TestFetchWorkMalformed(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"status":"ok","message":{"container-title":["Nature"],"created":{"date-parts":[[2020]]}}}`},
		{"missing container title", `{"status":"ok","message":{"title":["T"],"created":{"date-parts":[[2020]]}}}`},
		{"missing created date", `{"status":"ok","message":{"title":["T"],"container-title":["Nature"]}}`},
		{"empty date parts", `{"status":"ok","message":{"title":["T"],"container-title":["Nature"],"created":{"date-parts":[]}}}`},
		{"invalid json", `{"status":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newTestFetcher(srv.URL).FetchWork(context.Background(), "10.1000/xyz")
			assert.ErrorIs(t, err, ErrMalformedWork)
		})
	}
}

// Werke ohne jede ISSN sind gültig; die Auflösung läuft dann auf "kein
// Treffer" hinaus.
func TestFetchWorkNoISSN(t *testing.T) {
	body := `{"status":"ok","message":{"title":["T"],"container-title":["Proceedings X"],"created":{"date-parts":[[2019,5]]}}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	work, err := newTestFetcher(srv.URL).FetchWork(context.Background(), "10.1000/conf")
	require.NoError(t, err)
	assert.Empty(t, work.ISSNCandidates)
	assert.Equal(t, 2019, work.Year)
}
