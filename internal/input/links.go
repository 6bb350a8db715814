package input

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// FileRef represents a file stored in a GitHub repository
type FileRef struct {
	Owner string
	Repo  string
	Path  string
	Ref   string // branch, tag or sha; empty means the default branch
}

// String returns a string representation of the FileRef
func (ref FileRef) String() string {
	s := fmt.Sprintf("%s/%s/%s", ref.Owner, ref.Repo, ref.Path)
	if ref.Ref != "" {
		s += "@" + ref.Ref
	}
	return s
}

const githubScheme = "github:"

var (
	// https://github.com/{owner}/{repo}/blob/{ref}/{path}
	githubBlobRegex = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/blob/([^/]+)/(.+)$`)
	// https://raw.githubusercontent.com/{owner}/{repo}/{ref}/{path}
	githubRawRegex = regexp.MustCompile(`^https://raw\.githubusercontent\.com/([^/]+)/([^/]+)/([^/]+)/(.+)$`)
)

// IsGitHubLocation reports whether a location names a file in a GitHub repository
// rather than a local path
func IsGitHubLocation(location string) bool {
	location = strings.TrimSpace(location)
	return strings.HasPrefix(location, githubScheme) ||
		strings.HasPrefix(location, "https://github.com/") ||
		strings.HasPrefix(location, "https://raw.githubusercontent.com/")
}

// ParseFileRef parses a GitHub file location.
// Accepts github:{owner}/{repo}/{path}[@{ref}], blob URLs and raw URLs.
// Query parameters and fragments on URLs are ignored.
func ParseFileRef(location string) (FileRef, error) {
	location = strings.TrimSpace(location)

	if strings.HasPrefix(location, githubScheme) {
		return parseSchemeRef(strings.TrimPrefix(location, githubScheme))
	}

	parsedURL, err := url.Parse(location)
	if err != nil {
		return FileRef{}, fmt.Errorf("invalid URL format: %s", location)
	}
	parsedURL.RawQuery = ""
	parsedURL.Fragment = ""
	canonical := parsedURL.String()

	for _, re := range []*regexp.Regexp{githubBlobRegex, githubRawRegex} {
		if matches := re.FindStringSubmatch(canonical); matches != nil {
			return FileRef{
				Owner: matches[1],
				Repo:  matches[2],
				Ref:   matches[3],
				Path:  matches[4],
			}, nil
		}
	}

	return FileRef{}, fmt.Errorf("invalid GitHub file location: %s", location)
}

func parseSchemeRef(rest string) (FileRef, error) {
	var ref string
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		ref = rest[at+1:]
		rest = rest[:at]
	}

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return FileRef{}, fmt.Errorf("invalid GitHub file location: %s%s (expected github:owner/repo/path[@ref])", githubScheme, rest)
	}

	return FileRef{
		Owner: parts[0],
		Repo:  parts[1],
		Path:  strings.Trim(parts[2], "/"),
		Ref:   ref,
	}, nil
}
