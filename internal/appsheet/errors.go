package appsheet

import (
	"fmt"
	"net/http"
	"strings"
)

// snippetLimit bounds how much of a response body is echoed in errors.
const snippetLimit = 500

// APIError carries enough response diagnostics (status, content type and
// length, body snippet, redirect target) to debug a failing AppSheet
// deployment without repeating the request.
type APIError struct {
	Message       string // what went wrong, e.g. "AppSheet API forbidden (403). Check API enabled/key/plan"
	Status        int
	ContentType   string
	ContentLength int
	Endpoint      string
	Location      string // set for redirect responses
	Snippet       string // first 500 chars of the response body
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (status: %d, content-type: %s, content-length: %d). Endpoint: %s. ",
		e.Message, e.Status, e.ContentType, e.ContentLength, e.Endpoint)
	if e.Location != "" {
		fmt.Fprintf(&b, "Location: %s. ", e.Location)
	}
	fmt.Fprintf(&b, "Body (first %d chars): %s", snippetLimit, e.Snippet)
	return b.String()
}

// newAPIError builds an APIError from a received response.
func newAPIError(message, endpoint string, resp *response) *APIError {
	ct := resp.header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(ct)
	if ct == "" {
		ct = "unknown"
	}

	snippet := string(resp.body)
	if len(snippet) > snippetLimit {
		snippet = snippet[:snippetLimit]
	}
	loc := resp.header.Get("Location")
	if len(loc) > 200 {
		loc = loc[:200]
	}

	return &APIError{
		Message:       message,
		Status:        resp.status,
		ContentType:   ct,
		ContentLength: len(resp.body),
		Endpoint:      endpoint,
		Location:      loc,
		Snippet:       snippet,
	}
}

// response is a fully drained HTTP response. Draining up front keeps retry
// and diagnostics logic free of body lifecycle concerns.
type response struct {
	status int
	header http.Header
	body   []byte
}
