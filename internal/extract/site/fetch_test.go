package site

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_DetectsBotChallenge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Just a moment... checking your browser"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client())
	_, challenged, err := f.Fetch(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.True(t, challenged)
}

func TestFetcher_NormalResponseNotChallenged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>fine</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client())
	body, challenged, err := f.Fetch(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.False(t, challenged)
	assert.Contains(t, string(body), "fine")
}

func TestFetcher_RetriesOnceBeforeFailing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client())
	_, _, err := f.Fetch(t.Context(), srv.URL)
	assert.Error(t, err)
}
