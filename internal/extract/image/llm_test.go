package image

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicStub(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		quoted, _ := json.Marshal(text)
		w.Write([]byte(`{"content":[{"type":"text","text":` + string(quoted) + `}]}`))
	}))
}

func TestLLMClient_Extract_ParsesPureJSONResponse(t *testing.T) {
	srv := anthropicStub(t, `{"title":"Gallery Talk","start_date":"2026-04-10"}`)
	defer srv.Close()

	c := NewLLMClient("test-key")
	c.SetBaseURL(srv.URL)
	parsed, err := c.Extract(t.Context(), "ocr text", []byte{0xff, 0xd8}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "Gallery Talk", parsed["title"])
}

func TestLLMClient_Extract_FallsBackToSubstringParse(t *testing.T) {
	srv := anthropicStub(t, "Sure, here you go:\n```json\n{\"title\":\"Gallery Talk\"}\n```")
	defer srv.Close()

	c := NewLLMClient("test-key")
	c.SetBaseURL(srv.URL)
	parsed, err := c.Extract(t.Context(), "ocr text", nil, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "Gallery Talk", parsed["title"])
}

func TestLLMClient_Extract_NoAPIKeyIsValidationError(t *testing.T) {
	c := NewLLMClient("")
	_, err := c.Extract(t.Context(), "text", nil, "image/jpeg")
	assert.Error(t, err)
}
