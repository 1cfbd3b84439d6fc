package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Path, "stable-diffusion-xl-1024-v1-0")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		prompts := body["text_prompts"].([]any)
		require.Len(t, prompts, 1)
		assert.Equal(t, "a red pizza", prompts[0].(map[string]any)["text"])

		json.NewEncoder(w).Encode(map[string]any{
			"artifacts": []map[string]any{
				{"base64": "aGVsbG8=", "finishReason": "SUCCESS"},
			},
		})
	}))
	defer server.Close()

	client := NewStabilityClient(Config{APIKey: "test-key", BaseURL: server.URL})

	url, err := client.Generate(context.Background(), "a red pizza")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", url)
}

func TestGenerateMissingAPIKey(t *testing.T) {
	client := NewStabilityClient(Config{})
	_, err := client.Generate(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"insufficient balance"}`, http.StatusPaymentRequired)
	}))
	defer server.Close()

	client := NewStabilityClient(Config{APIKey: "test-key", BaseURL: server.URL})
	_, err := client.Generate(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerateMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewStabilityClient(Config{APIKey: "test-key", BaseURL: server.URL})
	_, err := client.Generate(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerateEmptyArtifacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"artifacts": []any{}})
	}))
	defer server.Close()

	client := NewStabilityClient(Config{APIKey: "test-key", BaseURL: server.URL})
	_, err := client.Generate(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerateTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewStabilityClient(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := client.Generate(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Less(t, time.Since(start), 5*time.Second)
}
