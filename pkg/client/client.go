// Package client talks to the ClinicCare service: identity lookup before
// rendering and patient submission at the end of an attempt.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/cliniccare/go-intake/pkg/submit"
)

const (
	documentField = "document"
	fileField     = "identificationDocument"

	maxErrorBody = 512
)

// Option customises the service client.
type Option func(*Service)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *Service) {
		if httpClient != nil {
			s.httpClient = httpClient
		}
	}
}

// WithAPIKey attaches an API key to every request.
func WithAPIKey(key string) Option {
	return func(s *Service) {
		s.apiKey = key
	}
}

// WithLogger overrides the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service is the HTTP client for the ClinicCare API.
type Service struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ submit.Submitter = (*Service)(nil)

// New constructs a client for the service at baseURL.
func New(baseURL string, options ...Option) *Service {
	s := &Service{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// SubmitPatient posts one assembled submission request. With an attachment it
// sends multipart form data carrying the JSON document plus the file bytes;
// without one it sends plain JSON. The call is made exactly once; callers own
// retry policy.
func (s *Service) SubmitPatient(ctx context.Context, req *submit.Request) (*submit.PatientRef, error) {
	if req == nil {
		return nil, fmt.Errorf("client: request is required")
	}

	document, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("client: encode request: %w", err)
	}

	var (
		body        io.Reader
		contentType string
	)
	if req.Attachment != nil {
		body, contentType, err = multipartBody(document, req)
		if err != nil {
			return nil, err
		}
	} else {
		body = bytes.NewReader(document)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/patients", body)
	if err != nil {
		return nil, fmt.Errorf("client: submit patient: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", req.AttemptID)
	if s.apiKey != "" {
		httpReq.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("client: submit patient: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("client: submit patient: status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read response: %w", err)
	}
	var ref submit.PatientRef
	if err := sonic.Unmarshal(payload, &ref); err != nil {
		return nil, fmt.Errorf("client: decode response: %w", err)
	}
	s.logger.Debug("patient submitted", "attempt", req.AttemptID, "patient", ref.ID)
	return &ref, nil
}

func multipartBody(document []byte, req *submit.Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	docHeader := textproto.MIMEHeader{}
	docHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, documentField))
	docHeader.Set("Content-Type", "application/json")
	docPart, err := writer.CreatePart(docHeader)
	if err != nil {
		return nil, "", fmt.Errorf("client: build multipart: %w", err)
	}
	if _, err := docPart.Write(document); err != nil {
		return nil, "", fmt.Errorf("client: build multipart: %w", err)
	}

	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, req.Attachment.Filename))
	fileHeader.Set("Content-Type", req.Attachment.MIMEType)
	filePart, err := writer.CreatePart(fileHeader)
	if err != nil {
		return nil, "", fmt.Errorf("client: build multipart: %w", err)
	}
	if _, err := filePart.Write(req.Attachment.Bytes); err != nil {
		return nil, "", fmt.Errorf("client: build multipart: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("client: build multipart: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

func readErrorBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return "no response body"
	}
	return strings.TrimSpace(string(data))
}

func (s *Service) userURL(userID string) string {
	return s.baseURL + "/v1/users/" + url.PathEscape(userID)
}
