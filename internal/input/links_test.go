package input

import (
	"testing"
)

func TestParseFileRef_ValidLocations(t *testing.T) {
	tests := []struct {
		name     string
		location string
		expected FileRef
	}{
		{
			name:     "scheme without ref",
			location: "github:sot/kadi-data/cmd_events.csv",
			expected: FileRef{Owner: "sot", Repo: "kadi-data", Path: "cmd_events.csv"},
		},
		{
			name:     "scheme with ref and nested path",
			location: "github:sot/kadi-data/data/cmd_events.csv@main",
			expected: FileRef{Owner: "sot", Repo: "kadi-data", Path: "data/cmd_events.csv", Ref: "main"},
		},
		{
			name:     "blob URL",
			location: "https://github.com/sot/kadi-data/blob/v1.2/data/cmd_events.csv",
			expected: FileRef{Owner: "sot", Repo: "kadi-data", Path: "data/cmd_events.csv", Ref: "v1.2"},
		},
		{
			name:     "blob URL with query and fragment",
			location: "https://github.com/sot/kadi-data/blob/main/cmd_events.csv?plain=1#L10",
			expected: FileRef{Owner: "sot", Repo: "kadi-data", Path: "cmd_events.csv", Ref: "main"},
		},
		{
			name:     "raw URL",
			location: "https://raw.githubusercontent.com/sot/kadi-data/main/cmd_events.csv",
			expected: FileRef{Owner: "sot", Repo: "kadi-data", Path: "cmd_events.csv", Ref: "main"},
		},
		{
			name:     "surrounding whitespace",
			location: "  github:sot/kadi-data/cmd_events.csv  ",
			expected: FileRef{Owner: "sot", Repo: "kadi-data", Path: "cmd_events.csv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseFileRef(tt.location)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, ref)
			}
		})
	}
}

func TestParseFileRef_InvalidLocations(t *testing.T) {
	tests := []struct {
		name     string
		location string
	}{
		{name: "scheme missing path", location: "github:sot/kadi-data"},
		{name: "scheme empty owner", location: "github:/kadi-data/file.csv"},
		{name: "issue URL", location: "https://github.com/sot/kadi/issues/12"},
		{name: "other host", location: "https://gitlab.com/sot/kadi/blob/main/file.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ref, err := ParseFileRef(tt.location); err == nil {
				t.Errorf("expected error for %q, got %+v", tt.location, ref)
			}
		})
	}
}

func TestFileRef_String(t *testing.T) {
	ref := FileRef{Owner: "sot", Repo: "kadi-data", Path: "cmd_events.csv", Ref: "main"}
	if got := ref.String(); got != "sot/kadi-data/cmd_events.csv@main" {
		t.Errorf("unexpected string: %s", got)
	}

	ref.Ref = ""
	if got := ref.String(); got != "sot/kadi-data/cmd_events.csv" {
		t.Errorf("unexpected string: %s", got)
	}
}
