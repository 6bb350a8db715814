package github

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

const (
	userAgent      = "schedule-view/1.0"
	requestTimeout = 30 * time.Second
)

// New creates a GitHub client. Requests are issued once; failures are
// returned to the caller without retrying.
// An empty token gives an unauthenticated client, which is enough for public repositories.
func New(ctx context.Context, token string) *github.Client {
	httpClient := &http.Client{Timeout: requestTimeout}
	if token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		httpClient.Timeout = requestTimeout
	}

	client := github.NewClient(httpClient)
	client.UserAgent = userAgent
	return client
}

func isRateLimited(resp *http.Response) bool {
	return resp.Header.Get("Retry-After") != "" || resp.Header.Get("X-RateLimit-Remaining") == "0"
}

// rateLimitReset returns when the rate limit window ends, or the zero time
// if the response does not say
func rateLimitReset(resp *http.Response) time.Time {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if sec, err := strconv.Atoi(s); err == nil {
			return time.Now().Add(time.Duration(sec) * time.Second)
		}
	}
	if s := resp.Header.Get("X-RateLimit-Reset"); s != "" {
		if reset, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(reset, 0)
		}
	}
	return time.Time{}
}
