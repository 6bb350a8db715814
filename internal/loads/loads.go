package loads

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultStarcheckBase is the root of the MP starcheck logs on the web server
const DefaultStarcheckBase = "https://icxc.harvard.edu/mp/mplogs"

// ID is a command load name such as "FEB2324A": a 7 character week label
// followed by a 1 character version letter
type ID string

// Week returns the 7 character week label, or the whole id if it is shorter
func (id ID) Week() string {
	if len(id) < 7 {
		return string(id)
	}
	return string(id[:7])
}

// Version returns the version letter, or "" if the id has no 8th character
func (id ID) Version() string {
	if len(id) < 8 {
		return ""
	}
	return string(id[7:8])
}

// Split returns the week label and version letter
func (id ID) Split() (week, version string) {
	return id.Week(), id.Version()
}

// String returns the load name
func (id ID) String() string {
	return string(id)
}

// Year returns the four digit year encoded in characters 6-7 of the load name
func (id ID) Year() (int, error) {
	if len(id) != 8 {
		return 0, fmt.Errorf("load name %q must be 8 characters", string(id))
	}
	yy, err := strconv.Atoi(string(id[5:7]))
	if err != nil {
		return 0, fmt.Errorf("load name %q has no two digit year: %w", string(id), err)
	}
	if yy >= 98 {
		return 1900 + yy, nil
	}
	return 2000 + yy, nil
}

// MPDir maps a load name to its directory fragment in the MP archive,
// e.g. "DEC2506C" -> "/2006/DEC2506/oflsc/"
func MPDir(id ID) (string, error) {
	year, err := id.Year()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/%d/%s/ofls%s/", year, id.Week(), strings.ToLower(id.Version())), nil
}

// StarcheckURL builds the starcheck link from a directory fragment
func StarcheckURL(base, fragment string) string {
	if base == "" {
		base = DefaultStarcheckBase
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(fragment, "/") + "starcheck.html"
}
