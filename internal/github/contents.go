package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/sot/schedule-view/internal/input"
	"github.com/sot/schedule-view/internal/logctx"
)

// Fetcher reads repository files through the Contents API.
// It satisfies input.FileFetcher.
type Fetcher struct {
	client *github.Client
}

// NewFetcher wraps a GitHub client
func NewFetcher(client *github.Client) *Fetcher {
	return &Fetcher{client: client}
}

// FetchFile retrieves the raw bytes of a repository file.
// Files too large for an inline payload are streamed through the download URL.
func (f *Fetcher) FetchFile(ctx context.Context, ref input.FileRef) ([]byte, error) {
	logger := logctx.From(ctx)
	logger.Debug("Fetching repository file", "owner", ref.Owner, "repo", ref.Repo, "path", ref.Path, "ref", ref.Ref)

	opts := &github.RepositoryContentGetOptions{Ref: ref.Ref}
	file, dir, _, err := f.client.Repositories.GetContents(ctx, ref.Owner, ref.Repo, ref.Path, opts)
	if err != nil {
		logger.Debug("GitHub API contents fetch failed", "file", ref.String(), "error", err)
		if enhancedErr := enhanceGitHubError(err, ref); enhancedErr != nil {
			return nil, enhancedErr
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", ref.String(), err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory with %d entries, not a file", ref.String(), len(dir))
	}

	if file.GetEncoding() == "none" || (file.Content == nil && file.GetSize() > 0) {
		return f.download(ctx, ref, opts)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ref.String(), err)
	}

	logger.Debug("Repository file fetched", "file", ref.String(), "bytes", len(content))
	return []byte(content), nil
}

func (f *Fetcher) download(ctx context.Context, ref input.FileRef, opts *github.RepositoryContentGetOptions) ([]byte, error) {
	rc, _, err := f.client.Repositories.DownloadContents(ctx, ref.Owner, ref.Repo, ref.Path, opts)
	if err != nil {
		if enhancedErr := enhanceGitHubError(err, ref); enhancedErr != nil {
			return nil, enhancedErr
		}
		return nil, fmt.Errorf("failed to download %s: %w", ref.String(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref.String(), err)
	}
	return data, nil
}

// enhanceGitHubError turns common API failures into actionable messages.
// Returns nil when no enhancement applies.
func enhanceGitHubError(err error, ref input.FileRef) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return rateLimited(ref, rateErr.Rate.Reset.Time)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		var reset time.Time
		if abuseErr.RetryAfter != nil {
			reset = time.Now().Add(*abuseErr.RetryAfter)
		}
		return rateLimited(ref, reset)
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("GitHub API authentication failed for %s. Please check your GITHUB_TOKEN is valid", ref.String())

		case http.StatusForbidden:
			if isRateLimited(ghErr.Response) {
				return rateLimited(ref, rateLimitReset(ghErr.Response))
			}
			msg := strings.ToLower(ghErr.Message)
			if strings.Contains(msg, "sso") || strings.Contains(msg, "organization") {
				return fmt.Errorf("GitHub API access denied for %s. Your token may require SSO authorization for this organization", ref.String())
			}
			return fmt.Errorf("GitHub API access denied for %s. Your token may not have access to this repository", ref.String())

		case http.StatusNotFound:
			return fmt.Errorf("GitHub file %s not found. The repository may be private or the path or ref may be wrong", ref.String())
		}
	}

	if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "deadline exceeded") {
		return fmt.Errorf("GitHub API request timed out for %s. Please check your network connection and try again", ref.String())
	}

	return nil
}

// rateLimited reports an exhausted rate limit. The request is not retried.
func rateLimited(ref input.FileRef, reset time.Time) error {
	if reset.IsZero() {
		return fmt.Errorf("GitHub API rate limit exceeded reading %s. Set GITHUB_TOKEN for a higher limit", ref.String())
	}
	return fmt.Errorf("GitHub API rate limit exceeded reading %s. Try again after %s", ref.String(), reset.UTC().Format(time.RFC3339))
}
