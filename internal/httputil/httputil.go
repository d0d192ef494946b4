// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the source fetchers.
//
// There is no retry: a failed request is reported once and the caller
// moves on.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodyBytes bounds how much of a response body is read.
const MaxBodyBytes = 16 << 20

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL     string
	Code    int
	Snippet string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned HTTP %d: %s", e.URL, e.Code, e.Snippet)
}

// Get performs a GET with the given User-Agent and Accept headers and
// returns the body of a 2xx response.
func Get(ctx context.Context, client *http.Client, url, userAgent, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Snippet: string(snippet)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}

// Pacer enforces a fixed pause between successive requests. The first
// call to Wait returns immediately.
type Pacer struct {
	Delay time.Duration

	// Sleep defaults to time.Sleep. Tests replace it.
	Sleep func(time.Duration)

	started bool
}

// NewPacer returns a Pacer with the given delay.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{Delay: delay}
}

// Wait blocks for Delay unless this is the first call.
func (p *Pacer) Wait() {
	if !p.started {
		p.started = true
		return
	}
	if p.Delay <= 0 {
		return
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(p.Delay)
}
