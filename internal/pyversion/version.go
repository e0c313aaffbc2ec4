// Package pyversion models Python interpreter version windows: PEP 440
// bounds, ranges over them, and requires-python requirements that can
// be narrowed to a range.
package pyversion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// Parse parses a PEP 440 version.
func Parse(value string) (pep440.Version, error) {
	parsed, err := pep440.Parse(strings.TrimSpace(value))
	if err != nil {
		return pep440.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version: %q", value)).
			WithCause(err)
	}
	return parsed, nil
}

// Release returns the numeric release segments of a version, without
// epoch, pre, post, dev or local parts.
func Release(v pep440.Version) []int {
	base := v.BaseVersion()
	if idx := strings.Index(base, "!"); idx >= 0 {
		base = base[idx+1:]
	}
	var out []int
	for _, part := range strings.Split(base, ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			break
		}
		out = append(out, n)
	}
	return out
}

// BumpPrefix keeps the first keep release segments of v, increments the
// last of them and returns the result. BumpPrefix("3.8.2", 2) is 3.9,
// BumpPrefix("3.8", 1) is 4.
func BumpPrefix(v pep440.Version, keep int) (pep440.Version, error) {
	release := Release(v)
	if keep <= 0 || keep > len(release) {
		return pep440.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("cannot bump %d segments of %s", keep, v.String()))
	}
	bumped := append([]int(nil), release[:keep]...)
	bumped[keep-1]++
	parts := make([]string, 0, len(bumped))
	for _, n := range bumped {
		parts = append(parts, strconv.Itoa(n))
	}
	return Parse(strings.Join(parts, "."))
}
