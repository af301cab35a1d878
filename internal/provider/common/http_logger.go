package common

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/johanforsgren/reporoulette/internal/logger"
)

const maxLoggedBody = 2048

var sensitiveHeaders = []string{
	"authorization",
	"x-api-key",
	"api-key",
	"x-auth-token",
	"cookie",
	"set-cookie",
}

// LoggingTransport wraps an http.RoundTripper and records every exchange
// in the session log.
type LoggingTransport struct {
	Transport http.RoundTripper
}

func NewLoggingTransport(transport http.RoundTripper) *LoggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &LoggingTransport{
		Transport: transport,
	}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger.Log("HTTP: %s %s\n%s", req.Method, req.URL.String(), formatHeaders(req.Header))

	resp, err := t.Transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		logger.LogError("HTTP_REQUEST", fmt.Sprintf("%s %s", req.Method, req.URL.String()), err)
		return nil, err
	}

	body, err := snapshotBody(resp)
	if err != nil {
		logger.LogError("HTTP_RESPONSE_BODY", req.URL.Path, err)
		return nil, err
	}
	logger.Log("HTTP: %s %s - %s (%v)\n%s%s", req.Method, req.URL.Path, resp.Status, duration.Round(time.Millisecond), formatHeaders(resp.Header), body)

	return resp, nil
}

func formatHeaders(header http.Header) string {
	var buf strings.Builder
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if isSensitiveHeader(name) {
			fmt.Fprintf(&buf, "  %s: [REDACTED]\n", name)
			continue
		}
		for _, value := range header[name] {
			fmt.Fprintf(&buf, "  %s: %s\n", name, value)
		}
	}
	return buf.String()
}

// snapshotBody reads the response body, puts an identical reader back for
// the caller and returns a loggable prefix of it.
func snapshotBody(resp *http.Response) (string, error) {
	if resp.Body == nil || resp.ContentLength == 0 {
		return "", nil
	}

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))

	if len(data) > maxLoggedBody {
		return fmt.Sprintf("Body (%d bytes, truncated):\n%s...\n", len(data), data[:maxLoggedBody]), nil
	}
	if len(data) > 0 {
		return fmt.Sprintf("Body (%d bytes):\n%s\n", len(data), data), nil
	}
	return "", nil
}

func isSensitiveHeader(name string) bool {
	return slices.Contains(sensitiveHeaders, strings.ToLower(name))
}
