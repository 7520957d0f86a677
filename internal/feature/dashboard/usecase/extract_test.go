package usecase_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_dashboard/internal/feature/dashboard/usecase"
)

const fence = "```"

func TestExtractJSON_FencedRoundTrip(t *testing.T) {
	t.Parallel()

	original := map[string]any{
		"marketData": []any{map[string]any{"symbol": "BTC-USD", "price": "98000.00"}},
		"news":       []any{},
		"events":     []any{map[string]any{"impact": "High"}},
	}
	b, err := json.MarshalIndent(original, "", "  ")
	require.NoError(t, err)

	prose := []string{
		"",
		"以下是最新数据：\n",
		"Here you go {not json} [1,2\n",
	}
	for _, before := range prose {
		text := before + fence + "json\n" + string(b) + "\n" + fence + "\n以上数据仅供参考 {}"

		raw, err := usecase.ExtractJSON(text)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, original, got)
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected string
		wantErr  bool
	}{
		{
			name:     "fenced block with uppercase tag",
			text:     "x\n" + fence + "JSON\n{\"a\":1}\n" + fence,
			expected: `{"a":1}`,
		},
		{
			name:     "unfenced object inside prose",
			text:     `数据如下 {"news":[{"title":"t"}]} 完毕`,
			expected: `{"news":[{"title":"t"}]}`,
		},
		{
			name:     "unfenced array",
			text:     `result: [1, 2, 3]`,
			expected: `[1, 2, 3]`,
		},
		{
			name:     "untagged fence falls back to greedy match",
			text:     fence + "\n{\"a\":true}\n" + fence,
			expected: `{"a":true}`,
		},
		{
			name:    "greedy match spans from first brace to last brace",
			text:    `{"a":1} and {"b":2}`,
			wantErr: true,
		},
		{
			name:    "no json at all",
			text:    "抱歉，我无法获取实时数据。",
			wantErr: true,
		},
		{
			name:    "empty reply",
			text:    "",
			wantErr: true,
		},
		{
			name:    "malformed fenced json does not fall back",
			text:    fence + "json\n{\"a\":}\n" + fence + "\n{\"b\":1}",
			wantErr: true,
		},
		{
			name:    "truncated object",
			text:    `{"marketData":[{"symbol":"x"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw, err := usecase.ExtractJSON(tt.text)
			if tt.wantErr {
				assert.True(t, errors.Is(err, usecase.ErrNoPayload), "expected ErrNoPayload, got %v", err)
				assert.Nil(t, raw)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(raw))
		})
	}
}
