package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	var gotPath, gotEvent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotEvent = r.URL.Query().Get("event")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"header":{"id":"401"}}`))
	}))
	defer srv.Close()

	a := New(srv.URL+"/", "", time.Second)
	body, err := a.Fetch(context.Background(), " 401 ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"header":{"id":"401"}}`, string(body))
	assert.Equal(t, "/apis/site/v2/sports/basketball/mens-college-basketball/summary", gotPath)
	assert.Equal(t, "401", gotEvent)
}

func TestFetch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such event", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "womens-college-basketball", time.Second).Fetch(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "espn status 404")
	assert.Contains(t, err.Error(), "no such event")
}

func TestFetch_EmptyID(t *testing.T) {
	_, err := New("", "", 0).Fetch(context.Background(), "  ")
	require.Error(t, err)
}

func TestSummaryURL(t *testing.T) {
	a := New("https://site.api.espn.com", "womens-college-basketball", 0)
	assert.Equal(t,
		"https://site.api.espn.com/apis/site/v2/sports/basketball/womens-college-basketball/summary?event=401638645",
		a.SummaryURL("401638645"))
}
