package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/sakshya-ai/sakshya-web/internal/report"
	"github.com/sakshya-ai/sakshya-web/internal/statement"
)

// ServerError is a non-2xx response from the analysis backend, with the
// detail extracted from the JSON error envelope when present.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("analysis backend error (status %d): %s", e.StatusCode, e.Detail)
}

// Client calls the external analysis backend that performs statement
// comparison, document text extraction, and speech transcription.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new analysis backend client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Analyze submits both statements for comparison and returns the
// confrontation report.
func (c *Client) Analyze(ctx context.Context, s1, s2 statement.Input) (*report.Report, error) {
	reqBody := AnalyzeRequest{
		Statement1Text: s1.Text,
		Statement1Type: string(s1.Type),
		Statement2Text: s2.Text,
		Statement2Type: string(s2.Type),
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/analyze", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var rep report.Report
	if err := json.Unmarshal(body, &rep); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}

	return &rep, nil
}

// UploadDocument posts a picked file for text extraction and returns the
// extracted preview. The preview replaces the slot's text; callers surface
// a truncated confirmation so the user can review it.
func (c *Client) UploadDocument(ctx context.Context, filename string, file io.Reader, stype statement.Type) (*UploadResult, error) {
	body, err := c.postMultipart(ctx, "/upload-document", filename, file, stype)
	if err != nil {
		return nil, err
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal upload response: %w", err)
	}

	return &result, nil
}

// SpeechToText posts an audio file or recorded blob for transcription and
// returns the transcript text.
func (c *Client) SpeechToText(ctx context.Context, filename string, audio io.Reader, stype statement.Type) (string, error) {
	body, err := c.postMultipart(ctx, "/speech-to-text", filename, audio, stype)
	if err != nil {
		return "", err
	}

	var result transcriptResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal transcript response: %w", err)
	}

	return result.Text, nil
}

func (c *Client) postMultipart(ctx context.Context, path, filename string, file io.Reader, stype statement.Type) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy file: %w", err)
	}
	if err := mw.WriteField("statement_type", string(stype)); err != nil {
		return nil, fmt.Errorf("write field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(body),
		}
	}

	return body, nil
}

// extractDetail prefers the JSON `detail` field and falls back to the raw
// response body.
func extractDetail(body []byte) string {
	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	return strings.TrimSpace(string(body))
}
