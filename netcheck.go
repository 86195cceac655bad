package linkbook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// reachabilityChecker probes link targets over the network.
type reachabilityChecker interface {
	CheckReachable(ctx context.Context, rawURL string) Outcome
}

// linkChecker probes URLs with a HEAD request, falling back to GET when a
// server rejects HEAD. Redirects are followed. After each probe it sleeps
// the configured delay so a burst of checks does not hammer one host.
type linkChecker struct {
	client  *http.Client
	timeout time.Duration
	delay   time.Duration
	sleep   func(time.Duration) // injectable for tests
}

// Compile-time interface check
var _ reachabilityChecker = (*linkChecker)(nil)

// newLinkChecker creates a linkChecker with the given per-probe timeout and
// post-probe delay.
func newLinkChecker(timeout, delay time.Duration) *linkChecker {
	return &linkChecker{
		client:  &http.Client{},
		timeout: timeout,
		delay:   delay,
		sleep:   time.Sleep,
	}
}

// CheckReachable probes one URL and reports the outcome. The configured
// delay is applied after the probe, whatever its verdict.
func (c *linkChecker) CheckReachable(ctx context.Context, rawURL string) Outcome {
	outcome := c.probe(ctx, rawURL)
	if c.delay > 0 {
		c.sleep(c.delay)
	}
	return outcome
}

func (c *linkChecker) probe(ctx context.Context, rawURL string) Outcome {
	probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status, err := c.request(probeCtx, http.MethodHead, rawURL)
	if err != nil {
		return classifyProbeError(err)
	}
	// Some servers reject HEAD outright; retry those with GET before
	// declaring the target broken.
	if status >= http.StatusBadRequest {
		status, err = c.request(probeCtx, http.MethodGet, rawURL)
		if err != nil {
			return classifyProbeError(err)
		}
	}
	if status >= http.StatusBadRequest {
		return Reject(fmt.Sprintf("HTTP error: %d", status))
	}
	return Accept()
}

// request issues one HTTP request and returns the final status code after
// redirects.
func (c *linkChecker) request(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode, nil
}

// classifyProbeError maps transport failures onto the warning vocabulary.
// Parse failures count as request errors, everything else on the wire is a
// connection error unless it timed out.
func classifyProbeError(err error) Outcome {
	var urlErr *url.Error
	switch {
	case errors.As(err, &urlErr):
		if urlErr.Timeout() {
			return Reject("Timeout error")
		}
		if urlErr.Op == "parse" {
			return Reject(fmt.Sprintf("Request error: %s", err))
		}
		return Reject("Connection error")
	case errors.Is(err, context.DeadlineExceeded):
		return Reject("Timeout error")
	default:
		return Reject(fmt.Sprintf("Request error: %s", err))
	}
}
