package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// --- helpers ---

func geminiServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(handler)
}

func newTestClient(t *testing.T, baseURL string) *HTTPClient {
	t.Helper()
	return NewHTTPClient("test-key", baseURL, 5*time.Second)
}

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

// --- Generate tests ---

func TestGenerate_ValidResponse(t *testing.T) {
	ts := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-3-pro-preview:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("unexpected key: %s", r.URL.Query().Get("key"))
		}

		var req generateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "Suggest 3 crops" {
			t.Errorf("unexpected contents: %+v", req.Contents)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(textResponse(`[{"name":"Rice"}]`))
	})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	result, err := c.Generate(context.Background(), GenerateRequest{
		Model:    "gemini-3-pro-preview",
		Contents: []Content{UserContent(Text("Suggest 3 crops"))},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != `[{"name":"Rice"}]` {
		t.Errorf("unexpected text: %s", result.Text)
	}
	if len(result.SourceURLs) != 0 {
		t.Errorf("expected no source urls, got %v", result.SourceURLs)
	}
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	called := false
	ts := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	defer ts.Close()

	c := NewHTTPClient("", ts.URL, 5*time.Second)
	_, err := c.Generate(context.Background(), GenerateRequest{
		Model:    "gemini-3-pro-preview",
		Contents: []Content{UserContent(Text("hello"))},
	})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if called {
		t.Error("client issued a network call despite missing key")
	}
}

func TestGenerate_SchemaSetsJSONMimeType(t *testing.T) {
	ts := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.GenerationConfig == nil {
			t.Fatal("expected generationConfig to be set")
		}
		if req.GenerationConfig.ResponseMIMEType != "application/json" {
			t.Errorf("unexpected mime type: %s", req.GenerationConfig.ResponseMIMEType)
		}
		if req.GenerationConfig.ResponseSchema["type"] != "OBJECT" {
			t.Errorf("unexpected schema: %v", req.GenerationConfig.ResponseSchema)
		}
		json.NewEncoder(w).Encode(textResponse(`{"ok":true}`))
	})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{
		Model:          "gemini-3-pro-preview",
		Contents:       []Content{UserContent(Text("q"))},
		ResponseSchema: map[string]any{"type": "OBJECT"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerate_GoogleSearchTool(t *testing.T) {
	ts := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Tools) != 1 || req.Tools[0].GoogleSearch == nil {
			t.Errorf("expected googleSearch tool, got %+v", req.Tools)
		}
		json.NewEncoder(w).Encode(textResponse("sunny all week"))
	})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{
		Model:        "gemini-3-pro-preview",
		Contents:     []Content{UserContent(Text("weather"))},
		GoogleSearch: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerate_GroundingSourceURLs(t *testing.T) {
	ts := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		resp := textResponse("grounded answer")
		cand := resp["candidates"].([]map[string]any)[0]
		cand["groundingMetadata"] = map[string]any{
			"groundingChunks": []map[string]any{
				{"web": map[string]any{"uri": "https://example.org/weather", "title": "Weather"}},
				{"web": map[string]any{"uri": ""}},
				{},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	result, err := c.Generate(context.Background(), GenerateRequest{
		Model:        "gemini-3-pro-preview",
		Contents:     []Content{UserContent(Text("weather"))},
		GoogleSearch: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.SourceURLs) != 1 || result.SourceURLs[0] != "https://example.org/weather" {
		t.Errorf("unexpected source urls: %v", result.SourceURLs)
	}
}

func TestGenerate_InlineImagePart(t *testing.T) {
	ts := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		parts := req.Contents[0].Parts
		if len(parts) != 2 {
			t.Fatalf("expected 2 parts, got %d", len(parts))
		}
		if parts[0].InlineData == nil || parts[0].InlineData.MIMEType != "image/jpeg" {
			t.Errorf("unexpected inline data: %+v", parts[0].InlineData)
		}
		json.NewEncoder(w).Encode(textResponse(`{"disease":"Leaf blight"}`))
	})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{
		Model:    "gemini-3-pro-preview",
		Contents: []Content{UserContent(Image("image/jpeg", "aGVsbG8="), Text("analyze"))},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	ts := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{
		Model:    "gemini-3-pro-preview",
		Contents: []Content{UserContent(Text("q"))},
	})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerate_BlankText(t *testing.T) {
	ts := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textResponse("   \n "))
	})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{
		Model:    "gemini-3-pro-preview",
		Contents: []Content{UserContent(Text("q"))},
	})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerate_APIErrorStatus(t *testing.T) {
	ts := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "invalid argument", "status": "INVALID_ARGUMENT"},
		})
	})
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{
		Model:    "gemini-3-pro-preview",
		Contents: []Content{UserContent(Text("q"))},
	})
	if err == nil {
		t.Fatal("expected error for 400 status")
	}
}

func TestGenerate_Timeout(t *testing.T) {
	ts := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(textResponse("too late"))
	})
	defer ts.Close()

	c := NewHTTPClient("test-key", ts.URL, 50*time.Millisecond)
	_, err := c.Generate(context.Background(), GenerateRequest{
		Model:    "gemini-3-pro-preview",
		Contents: []Content{UserContent(Text("q"))},
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestConfigured(t *testing.T) {
	if !NewHTTPClient("key", "http://localhost", time.Second).Configured() {
		t.Error("expected configured client")
	}
	if NewHTTPClient("", "http://localhost", time.Second).Configured() {
		t.Error("expected unconfigured client")
	}
}
