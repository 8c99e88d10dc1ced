// Package gemini is a thin typed client for the generative-language REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sentinel errors for generative API failures.
var (
	ErrMissingAPIKey = errors.New("gemini api key missing")
	ErrEmptyResponse = errors.New("gemini returned empty response")
	ErrUnreachable   = errors.New("gemini unreachable")
	ErrTimeout       = errors.New("gemini request timeout")
)

// Client is the interface for calling the generative model.
type Client interface {
	// Generate sends exactly one request and returns exactly one reply.
	// There is no retry or backoff; transport failures surface to the caller.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	// Configured reports whether an API key is present.
	Configured() bool
}

// Part is one piece of request content: text, or an inline base64 image.
type Part struct {
	Text       string
	InlineData *Blob
}

// Blob is a base64-encoded payload with its MIME type.
type Blob struct {
	MIMEType string
	Data     string
}

// Content is an ordered group of parts attributed to a role.
type Content struct {
	Role  string
	Parts []Part
}

// Text returns a text-only part.
func Text(s string) Part {
	return Part{Text: s}
}

// Image returns an inline-image part.
func Image(mimeType, base64Data string) Part {
	return Part{InlineData: &Blob{MIMEType: mimeType, Data: base64Data}}
}

// UserContent wraps parts as a user turn.
func UserContent(parts ...Part) Content {
	return Content{Role: "user", Parts: parts}
}

// GenerateRequest defines parameters for one generateContent call.
type GenerateRequest struct {
	Model    string
	System   string
	Contents []Content
	// ResponseSchema, when set, declares the JSON shape the model must
	// honor and switches the response MIME type to application/json.
	ResponseSchema map[string]any
	// GoogleSearch enables search grounding for time-sensitive queries.
	GoogleSearch bool
}

// GenerateResult is the reply to one call: the concatenated text of the
// first candidate, plus any web sources the reply was grounded on.
type GenerateResult struct {
	Text       string
	SourceURLs []string
}

// HTTPClient implements Client against the REST API.
type HTTPClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a new generative API client. An empty apiKey is
// allowed; every Generate call then fails with ErrMissingAPIKey before any
// network I/O.
func NewHTTPClient(apiKey, baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Configured() bool {
	return c.apiKey != ""
}

func (c *HTTPClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY", ErrMissingAPIKey)
	}

	body := generateContentRequest{
		Contents: toWireContents(req.Contents),
	}
	if req.System != "" {
		body.SystemInstruction = &wireContent{Parts: []wirePart{{Text: req.System}}}
	}
	if req.ResponseSchema != nil {
		body.GenerationConfig = &wireGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   req.ResponseSchema,
		}
	}
	if req.GoogleSearch {
		body.Tools = []wireTool{{GoogleSearch: &struct{}{}}}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(req.Model), url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini api status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("gemini api error %s: %s", parsed.Error.Status, parsed.Error.Message)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &GenerateResult{
		Text:       text,
		SourceURLs: groundingURLs(parsed.Candidates[0].GroundingMetadata),
	}, nil
}

func toWireContents(contents []Content) []wireContent {
	out := make([]wireContent, 0, len(contents))
	for _, c := range contents {
		wc := wireContent{Role: c.Role}
		for _, p := range c.Parts {
			wp := wirePart{Text: p.Text}
			if p.InlineData != nil {
				wp.InlineData = &wireBlob{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data}
			}
			wc.Parts = append(wc.Parts, wp)
		}
		out = append(out, wc)
	}
	return out
}

func groundingURLs(gm *wireGroundingMetadata) []string {
	if gm == nil {
		return nil
	}
	var urls []string
	for _, chunk := range gm.GroundingChunks {
		if chunk.Web != nil && chunk.Web.URI != "" {
			urls = append(urls, chunk.Web.URI)
		}
	}
	return urls
}

// classifyError maps transport-level errors to sentinel errors.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

// --- wire types (REST API uses camelCase field names) ---

type generateContentRequest struct {
	Contents          []wireContent         `json:"contents"`
	SystemInstruction *wireContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *wireGenerationConfig `json:"generationConfig,omitempty"`
	Tools             []wireTool            `json:"tools,omitempty"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text       string    `json:"text,omitempty"`
	InlineData *wireBlob `json:"inlineData,omitempty"`
}

type wireBlob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type wireGenerationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type wireTool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type generateContentResponse struct {
	Candidates []wireCandidate `json:"candidates"`
	Error      *wireError      `json:"error,omitempty"`
}

type wireCandidate struct {
	Content struct {
		Parts []wirePart `json:"parts"`
		Role  string     `json:"role"`
	} `json:"content"`
	FinishReason      string                 `json:"finishReason"`
	GroundingMetadata *wireGroundingMetadata `json:"groundingMetadata,omitempty"`
}

type wireGroundingMetadata struct {
	GroundingChunks []wireGroundingChunk `json:"groundingChunks"`
}

type wireGroundingChunk struct {
	Web *struct {
		URI   string `json:"uri"`
		Title string `json:"title"`
	} `json:"web,omitempty"`
}

type wireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
