package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchGroundedGenerator_Defaults(t *testing.T) {
	t.Parallel()

	g := NewSearchGroundedGenerator(Config{APIKey: "test-key"}, nil)

	assert.Equal(t, DefaultModel, g.cfg.Model)
	assert.Equal(t, "test-key", g.cfg.APIKey)
}

func TestSearchGroundedGenerator_Generate_Success(t *testing.T) {
	t.Parallel()

	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotPath = r.URL.Path
		gotBody = string(b)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"candidates": [
				{
					"content": {
						"role": "model",
						"parts": [{"text": "行情如下：\n` + "```json" + `\n{\"marketData\":[]}\n` + "```" + `"}]
					},
					"finishReason": "STOP"
				}
			]
		}`))
	}))
	defer server.Close()

	g := NewSearchGroundedGenerator(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, server.Client())

	text, err := g.Generate(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Contains(t, text, `{"marketData":[]}`)
	assert.Contains(t, gotPath, "gemini-2.5-flash:generateContent")
	// 検索ツールが有効になっていること
	assert.Contains(t, gotBody, "googleSearch")
	assert.Contains(t, gotBody, "prompt")
}

func TestSearchGroundedGenerator_Generate_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	g := NewSearchGroundedGenerator(Config{APIKey: "bad-key", BaseURL: server.URL}, server.Client())

	text, err := g.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Empty(t, text)
	assert.True(t, strings.HasPrefix(err.Error(), "gemini API request failed"), "got %q", err.Error())
}
