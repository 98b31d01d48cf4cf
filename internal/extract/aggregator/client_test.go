package aggregator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturefeed-backend/internal/logger"
)

func TestFetchEvents_NoTokenReturnsEmptyWithoutError(t *testing.T) {
	os.Unsetenv(AuthTokenEnvVar)
	c := NewClient("https://aggregator.example.com")
	ctx := logger.NewContext(t.Context(), logger.Default())
	candidates, err := c.FetchEvents(ctx, "12345678", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestFetchEvents_PaginatesUntilCursorExhausted(t *testing.T) {
	pages := []eventsByOrganizerResponse{
		{Events: []aggregatorEvent{{Title: "Page 1 Show", URL: "https://x/1"}}, NextCursor: strPtr("cursor-2")},
		{Events: []aggregatorEvent{{Title: "Page 2 Show", URL: "https://x/2"}}, NextCursor: nil},
	}
	call := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(pages[call])
		call++
	}))
	defer srv.Close()

	os.Setenv(AuthTokenEnvVar, "test-token")
	defer os.Unsetenv(AuthTokenEnvVar)

	c := NewClient(srv.URL)
	ctx := logger.NewContext(t.Context(), logger.Default())
	candidates, err := c.FetchEvents(ctx, "12345678", nil, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Page 1 Show", candidates[0].Title)
	assert.Equal(t, "Page 2 Show", candidates[1].Title)
	assert.True(t, candidates[0].IsRegistrationRequired)
	assert.Equal(t, "aggregator", candidates[0].Source)
}

func strPtr(s string) *string { return &s }
