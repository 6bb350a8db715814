package input

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sot/schedule-view/internal/logctx"
)

// SourceMode represents where a tabular input is read from
type SourceMode int

const (
	// SourceModeUnknown indicates no usable location
	SourceModeUnknown SourceMode = iota
	// SourceModeLocal indicates a file on the local filesystem
	SourceModeLocal
	// SourceModeGitHub indicates a file in a GitHub repository
	SourceModeGitHub
)

// String returns the string representation of SourceMode
func (m SourceMode) String() string {
	switch m {
	case SourceModeLocal:
		return "Local"
	case SourceModeGitHub:
		return "GitHub"
	default:
		return "Unknown"
	}
}

// FileFetcher fetches file contents from GitHub.
// Declared here so the github package can depend on input without a cycle.
type FileFetcher interface {
	FetchFile(ctx context.Context, ref FileRef) ([]byte, error)
}

// DetectMode classifies a location
func DetectMode(location string) SourceMode {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return SourceModeUnknown
	case IsGitHubLocation(location):
		return SourceModeGitHub
	default:
		return SourceModeLocal
	}
}

// ReadLocation returns the contents of a local path or GitHub file location.
// A GitHub location requires a non-nil fetcher.
func ReadLocation(ctx context.Context, location string, fetcher FileFetcher) ([]byte, error) {
	logger := logctx.From(ctx)

	mode := DetectMode(location)
	logger.Debug("Resolving input location", "location", location, "mode", mode.String())

	switch mode {
	case SourceModeLocal:
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", location, err)
		}
		return data, nil

	case SourceModeGitHub:
		if fetcher == nil {
			return nil, fmt.Errorf("no GitHub client available to read %s", location)
		}
		ref, err := ParseFileRef(location)
		if err != nil {
			return nil, err
		}
		data, err := fetcher.FetchFile(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", ref.String(), err)
		}
		logger.Debug("Fetched file from GitHub", slog.String("file", ref.String()), slog.Int("bytes", len(data)))
		return data, nil

	default:
		return nil, fmt.Errorf("no input location configured")
	}
}
