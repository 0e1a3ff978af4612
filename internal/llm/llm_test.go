package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestExtractJSON(t *testing.T) {
	got, err := extractJSON("Вот смета:\n```json\n{\"a\": {\"b\": 1}}\n```")
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 1}}`, got)

	_, err = extractJSON("нет данных")
	assert.ErrorIs(t, err, errNoJSON)

	_, err = extractJSON("} {")
	assert.ErrorIs(t, err, errNoJSON)
}

func TestParseDraft(t *testing.T) {
	d, err := ParseDraft(`Ответ: {"event_type":"banquet","guest_count":40,"items":[{"name":"Цезарь","quantity":40,"price":450}],"total_cost":18000,"staff_required":4,"explanation":"ok"}`)
	require.NoError(t, err)

	assert.Equal(t, "banquet", d.EventType)
	assert.Equal(t, 40, d.GuestCount)
	require.Len(t, d.Items, 1)
	assert.Equal(t, 450.0, d.Items[0].Price)
	assert.False(t, d.Fallback)

	_, err = ParseDraft(`{"guest_count": "many"}`)
	assert.Error(t, err)
}

type stubModel struct {
	text string
	err  error
}

func (s stubModel) GenerateContent(context.Context, []llms.MessageContent, ...llms.CallOption) (*llms.ContentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: s.text}}}, nil
}

func (s stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s, prompt, options...)
}

func TestRequestDraft_FallsBackToDefault(t *testing.T) {
	d, err := RequestDraft(context.Background(), stubModel{text: "извините, не могу"}, "prompt")

	assert.Error(t, err)
	assert.True(t, d.Fallback)
	assert.Equal(t, 30, d.GuestCount)
	assert.Equal(t, 63000.0, d.TotalCost)
	assert.Equal(t, 3, d.StaffRequired)
	assert.Len(t, d.Items, 3)
}

func TestRequestDraft_ModelError(t *testing.T) {
	d, err := RequestDraft(context.Background(), stubModel{err: errors.New("overloaded")}, "prompt")

	assert.ErrorContains(t, err, "overloaded")
	assert.True(t, d.Fallback)
}

func TestComplete_RejectsEmpty(t *testing.T) {
	_, err := Complete(context.Background(), stubModel{text: "ok"}, "   ")
	assert.Error(t, err)

	_, err = Complete(context.Background(), stubModel{text: "  \n "}, "hello")
	assert.Error(t, err)

	text, err := Complete(context.Background(), stubModel{text: "  ответ "}, "hello")
	require.NoError(t, err)
	assert.Equal(t, "ответ", text)
}

type messagesRequest struct {
	Model       string            `json:"model"`
	MaxTokens   int               `json:"max_tokens"`
	Temperature float64           `json:"temperature"`
	Messages    []json.RawMessage `json:"messages"`
}

func TestAnthropicModel_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 512, req.MaxTokens)
		require.Len(t, req.Messages, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"test-model",` +
			`"content":[{"type":"text","text":"{\"guest_count\": 12}"}],` +
			`"stop_reason":"end_turn","usage":{"input_tokens":5,"output_tokens":7}}`))
	}))
	defer srv.Close()

	m, err := NewAnthropicModel(Config{APIKey: "secret", Model: "test-model", BaseURL: srv.URL + "/v1", MaxTokens: 512})
	require.NoError(t, err)

	text, err := Complete(context.Background(), m, "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"guest_count": 12}`, text)

	d, err := RequestDraft(context.Background(), m, "hello")
	require.NoError(t, err)
	assert.Equal(t, 12, d.GuestCount)
}

func TestAnthropicModel_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	m, err := NewAnthropicModel(Config{APIKey: "k", Model: "m", BaseURL: srv.URL + "/v1", Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	_, err = Complete(context.Background(), m, "hello")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
}

func TestAnthropicModel_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	m, err := NewAnthropicModel(Config{APIKey: "k", Model: "m", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = Complete(context.Background(), m, "hello")
	assert.Error(t, err)
}

func TestNewAnthropicModel_RequiresKeyAndModel(t *testing.T) {
	_, err := NewAnthropicModel(Config{Model: "m"})
	assert.Error(t, err)

	_, err = NewAnthropicModel(Config{APIKey: "k"})
	assert.Error(t, err)
}

func TestBuildEstimatePrompt(t *testing.T) {
	p := BuildEstimatePrompt("Банкет на 30 человек", []domain.CatalogEntry{
		{Name: "Цезарь", Category: "Салаты", UnitPrice: 450, UnitWeightGrams: 200},
	})

	assert.Contains(t, p, "Банкет на 30 человек")
	assert.Contains(t, p, "Цезарь | Салаты | 450 | 200")
	assert.Contains(t, p, `"staff_required"`)
}
