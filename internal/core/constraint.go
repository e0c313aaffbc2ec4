package core

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"forkenv/internal/marker"
	"forkenv/internal/types"
)

var requirementName = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?(\[[A-Za-z0-9._,\s-]*\])?$`)

// urlMarkerSeparator ends the URL of a direct reference. The ';' must
// follow whitespace so URLs may contain ';' themselves.
var urlMarkerSeparator = regexp.MustCompile(`\s;`)

// ParseRequirement splits a PEP 508 requirement such as
// `numpy>=1.26; python_version >= "3.9"` or `pkg @ https://host/pkg.whl`
// into name, specifier or URL, and marker. All parts are validated.
func ParseRequirement(raw string, source string) (types.Requirement, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty requirement")
	}
	if at := strings.Index(raw, "@"); at >= 0 && !strings.ContainsAny(raw[:at], "<>=!~;(") {
		return parseURLRequirement(raw, at, source)
	}
	spec, markerText, _ := strings.Cut(raw, ";")
	spec = strings.TrimSpace(spec)

	name := spec
	specifier := ""
	if idx := strings.IndexAny(spec, "<>=!~("); idx >= 0 {
		name = strings.TrimSpace(spec[:idx])
		specifier = strings.TrimSpace(spec[idx:])
		specifier = strings.TrimSuffix(strings.TrimPrefix(specifier, "("), ")")
		specifier = strings.TrimSpace(specifier)
	}
	if err := checkName(name, raw); err != nil {
		return types.Requirement{}, err
	}
	if specifier != "" {
		if _, err := pep440.NewSpecifiers(specifier); err != nil {
			return types.Requirement{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid requirement specifier: %s", raw)).
				WithCause(err)
		}
	}
	canonical, err := canonicalMarker(markerText)
	if err != nil {
		return types.Requirement{}, err
	}
	return types.Requirement{
		Name:      name,
		Specifier: specifier,
		Marker:    canonical,
		Source:    source,
	}, nil
}

func parseURLRequirement(raw string, at int, source string) (types.Requirement, error) {
	name := strings.TrimSpace(raw[:at])
	if err := checkName(name, raw); err != nil {
		return types.Requirement{}, err
	}
	rest := strings.TrimSpace(raw[at+1:])
	location, markerText := rest, ""
	if loc := urlMarkerSeparator.FindStringIndex(rest); loc != nil {
		location = strings.TrimSpace(rest[:loc[0]])
		markerText = rest[loc[1]:]
	}
	parsed, err := url.Parse(location)
	if err != nil || parsed.Scheme == "" || strings.ContainsAny(location, " \t") {
		built := errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid requirement url: %s", raw))
		if err != nil {
			built = built.WithCause(err)
		}
		return types.Requirement{}, built
	}
	canonical, err := canonicalMarker(markerText)
	if err != nil {
		return types.Requirement{}, err
	}
	return types.Requirement{
		Name:   name,
		URL:    location,
		Marker: canonical,
		Source: source,
	}, nil
}

func checkName(name string, raw string) error {
	if requirementName.MatchString(name) {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid requirement name: %s", raw))
}

// canonicalMarker validates a requirement marker and returns its
// canonical rendering. A marker that can never match has no PEP 508
// rendering, so it is kept as written; it still parses to the same
// never-true expression.
func canonicalMarker(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	m, err := marker.Parse(text)
	if err != nil {
		return "", err
	}
	if m.IsFalse() {
		return text, nil
	}
	return m.String(), nil
}
