package ai

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
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(generateResponse{
			Model:    got.Model,
			Response: "train more legs",
			Done:     true,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3", time.Second)
	result := client.Generate(context.Background(), "analyse my week")

	require.True(t, result.OK(), "unexpected failure: %+v", result.Err)
	assert.Equal(t, "train more legs", result.Response)
	assert.Equal(t, "llama3", got.Model)
	assert.Equal(t, "analyse my week", got.Prompt)
	assert.False(t, got.Stream, "streaming is always off")
}

func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, "llama3", 50*time.Millisecond)

	start := time.Now()
	result := client.Generate(context.Background(), "slow prompt")

	require.False(t, result.OK())
	assert.Equal(t, FailureTimeout, result.Err.Kind)
	assert.Less(t, time.Since(start), 5*time.Second, "the call must give up at the deadline")
}

func TestGenerateUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3", time.Second)
	result := client.Generate(context.Background(), "prompt")

	require.False(t, result.OK())
	assert.Equal(t, FailureUpstream, result.Err.Kind)
	assert.Contains(t, result.Err.Message, "500")
	assert.Contains(t, result.Err.Message, "model not loaded")
}

func TestGenerateBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3", time.Second)
	result := client.Generate(context.Background(), "prompt")

	require.False(t, result.OK())
	assert.Equal(t, FailureUpstream, result.Err.Kind)
}

func TestGenerateConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, "llama3", time.Second)
	result := client.Generate(context.Background(), "prompt")

	require.False(t, result.OK())
	assert.Equal(t, FailureUpstream, result.Err.Kind)
}

func TestNewClientDefaultTimeout(t *testing.T) {
	client := NewClient("http://localhost:11434", "llama3", 0)
	assert.Equal(t, DefaultTimeout, client.timeout)
}
