package project

import (
	"fmt"
	"net/url"
	"strings"
)

// packageURL is a parsed Package URL (pkg:type/namespace/name@version?qualifiers#subpath).
type packageURL struct {
	Type       string
	Namespace  string
	Name       string
	Version    string
	Qualifiers url.Values
}

func parsePackageURL(s string) (packageURL, error) {
	rest, ok := strings.CutPrefix(s, "pkg:")
	if !ok {
		return packageURL{}, fmt.Errorf("purl %q: missing pkg: scheme", s)
	}

	rest, _, _ = strings.Cut(rest, "#")

	var p packageURL
	if path, query, found := strings.Cut(rest, "?"); found {
		qualifiers, err := url.ParseQuery(query)
		if err != nil {
			return packageURL{}, fmt.Errorf("purl %q: qualifiers: %w", s, err)
		}
		p.Qualifiers = qualifiers
		rest = path
	}

	if at := strings.LastIndex(rest, "@"); at >= 0 {
		version, err := url.PathUnescape(rest[at+1:])
		if err != nil {
			return packageURL{}, fmt.Errorf("purl %q: version: %w", s, err)
		}
		p.Version = version
		rest = rest[:at]
	}

	segments := strings.Split(strings.Trim(rest, "/"), "/")
	if len(segments) < 2 {
		return packageURL{}, fmt.Errorf("purl %q: missing name", s)
	}
	for i, seg := range segments {
		unescaped, err := url.PathUnescape(seg)
		if err != nil {
			return packageURL{}, fmt.Errorf("purl %q: %w", s, err)
		}
		segments[i] = unescaped
	}

	p.Type = strings.ToLower(segments[0])
	p.Name = segments[len(segments)-1]
	p.Namespace = strings.Join(segments[1:len(segments)-1], "/")
	return p, nil
}
