package common

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

var (
	ErrUpstreamStatus   = errors.New("upstream returned a non-success status")
	ErrTransport        = errors.New("request failed before a response was received")
	ErrMalformedPayload = errors.New("malformed repository payload")
)

// StatusError reports a non-2xx response. It matches ErrUpstreamStatus
// under errors.Is.
type StatusError struct {
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	text := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", text, ExtractErrorMessage(e.Err))
	}
	return text
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

var messageFieldRegex = regexp.MustCompile(`Message:([^}\]]+)`)

// ExtractErrorMessage pulls the human readable part out of a go-github
// error string, falling back to the full text.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	text := err.Error()
	if matches := messageFieldRegex.FindStringSubmatch(text); len(matches) == 2 {
		if msg := strings.TrimSpace(matches[1]); msg != "" {
			return msg
		}
	}

	// "GET https://api.github.com/users/x/repos: 404 Not Found []"
	if idx := strings.Index(text, "://"); idx >= 0 {
		if sep := strings.Index(text[idx:], ": "); sep >= 0 {
			rest := strings.TrimSpace(text[idx+sep+2:])
			rest = strings.TrimSuffix(rest, "[]")
			if rest = strings.TrimSpace(rest); rest != "" {
				return rest
			}
		}
	}

	return text
}
