// Package api is the HTTP client for the hiring-assistant backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/hiring-assistant/internal/schemas"
	"github.com/jonathan/hiring-assistant/internal/types"
)

// Endpoint paths.
const (
	PathLogin         = "/api/auth/login"
	PathRegister      = "/api/auth/register"
	PathExtractSkills = "/api/jobs/extract-skills"
	PathUploadResume  = "/api/resumes/upload"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client  // overrides Timeout when set
	Token      func() string // bearer token for workspace calls; "" sends none
	Verbose    bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{Timeout: DefaultTimeout}
}

// Client calls the four backend endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
	verbose    bool
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		token:      opts.Token,
		verbose:    opts.Verbose,
	}
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error) {
	var resp types.LoginResponse
	if err := c.postJSON(ctx, PathLogin, req, &resp, false, ""); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &TransportError{Method: http.MethodPost, Path: PathLogin, Message: "login response has no token"}
	}
	return &resp, nil
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*types.RegisterResponse, error) {
	var resp types.RegisterResponse
	if err := c.postJSON(ctx, PathRegister, req, &resp, false, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExtractSkills returns the skill tags the backend extracts from a job description.
func (c *Client) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	var resp types.ExtractSkillsResponse
	err := c.postJSON(ctx, PathExtractSkills, types.ExtractSkillsRequest{Text: text}, &resp, true, schemas.ExtractSkills)
	if err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

// Upload is one resume submission.
type Upload struct {
	FileName       string
	Content        io.Reader
	JobID          string
	JobDescription string
}

// UploadResume posts one resume as multipart form data and returns its analysis.
func (c *Client) UploadResume(ctx context.Context, up Upload) (*types.AnalysisResult, error) {
	body, contentType := multipartBody(up)

	var resp types.UploadResponse
	if err := c.do(ctx, http.MethodPost, PathUploadResume, body, contentType, &resp, true, schemas.UploadResult); err != nil {
		return nil, err
	}
	return resp.Resume, nil
}

// multipartBody streams the form through a pipe so large files are not
// buffered in memory.
func multipartBody(up Upload) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(mw, up)
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
	}()

	return pr, mw.FormDataContentType()
}

func writeUploadForm(mw *multipart.Writer, up Upload) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, escapeQuotes(up.FileName)))
	header.Set("Content-Type", contentTypeFor(up.FileName))

	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create resume part: %w", err)
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return fmt.Errorf("failed to copy resume %s: %w", up.FileName, err)
	}

	if err := mw.WriteField("jobId", up.JobID); err != nil {
		return fmt.Errorf("failed to write jobId: %w", err)
	}
	if err := mw.WriteField("jobDescription", up.JobDescription); err != nil {
		return fmt.Errorf("failed to write jobDescription: %w", err)
	}
	return nil
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any, authed bool, schema schemas.Name) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), "application/json", out, authed, schema)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any, authed bool, schema schemas.Name) error {
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Method: method, Path: path, RequestID: requestID, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if authed && c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: method, Path: path, RequestID: requestID, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, RequestID: requestID, Message: "failed to read response body", Cause: err}
	}

	if c.verbose {
		log.Printf("[API] %s %s -> %d (%s, request %s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, RequestID: requestID}
		var errBody types.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		if schema != "" {
			return &TransportError{Method: method, Path: path, RequestID: requestID, Message: "empty response body"}
		}
		return nil
	}

	if schema != "" {
		if err := schemas.Validate(schema, data); err != nil {
			return &TransportError{Method: method, Path: path, RequestID: requestID, Message: "unexpected response shape", Cause: err}
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Method: method, Path: path, RequestID: requestID, Message: "failed to decode response", Cause: err}
	}
	return nil
}
