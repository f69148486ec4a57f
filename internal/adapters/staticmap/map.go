// Package staticmap implements the curated soname resolution layer.
package staticmap

import (
	"context"
	_ "embed"
	"os"
	"strings"
	"unicode"

	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var bundledSonames []byte

//go:embed debnames.yaml
var bundledDebNames []byte

// Entry is one pattern -> target-reference record. Entries carry priority by
// position: the first matching entry wins.
type Entry struct {
	Pattern string `yaml:"pattern"`
	Attr    string `yaml:"attr"`
}

// Map is the static library map, loaded once at startup. It is read-only
// for the process lifetime and safe for concurrent lookups.
type Map struct {
	entries []Entry
	debian  map[string]string
}

// New parses the bundled data files. A malformed bundle is a fatal startup
// error: proceeding without the map would silently degrade every lookup.
func New() (*Map, error) {
	return newFromBytes(bundledSonames, bundledDebNames)
}

// NewWithExtra parses the bundle plus an optional user-supplied entry file,
// appended after the bundled entries.
func NewWithExtra(extraPath string) (*Map, error) {
	m, err := newFromBytes(bundledSonames, bundledDebNames)
	if err != nil {
		return nil, err
	}
	if extraPath == "" {
		return m, nil
	}

	data, err := os.ReadFile(extraPath) //nolint:gosec // path comes from user config
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read extra static map")
	}
	var extra []Entry
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, zerr.Wrap(domain.ErrStaticMapMalformed, err.Error())
	}
	if err := validate(extra); err != nil {
		return nil, err
	}
	m.entries = append(m.entries, extra...)
	return m, nil
}

func newFromBytes(sonames, debNames []byte) (*Map, error) {
	var entries []Entry
	if err := yaml.Unmarshal(sonames, &entries); err != nil {
		return nil, zerr.Wrap(domain.ErrStaticMapMalformed, err.Error())
	}
	if len(entries) == 0 {
		return nil, zerr.With(domain.ErrStaticMapMalformed, "reason", "no entries")
	}
	if err := validate(entries); err != nil {
		return nil, err
	}

	debian := make(map[string]string)
	if err := yaml.Unmarshal(debNames, &debian); err != nil {
		return nil, zerr.Wrap(domain.ErrStaticMapMalformed, err.Error())
	}

	return &Map{entries: entries, debian: debian}, nil
}

func validate(entries []Entry) error {
	for i, e := range entries {
		if e.Pattern == "" || e.Attr == "" {
			return zerr.With(domain.ErrStaticMapMalformed, "entry_index", i)
		}
	}
	return nil
}

// Lookup maps a soname to a nixpkgs attribute. Matching rules, in order:
// exact soname match anywhere in the table, then a match with the trailing
// version numbers stripped (libfoo.so.2 matches an entry registered for
// libfoo.so). Within each rule the first registered entry wins.
func (m *Map) Lookup(name string) (string, bool) {
	for _, e := range m.entries {
		if name == e.Pattern {
			return e.Attr, true
		}
	}

	stripped := TrimVersionSuffix(name)
	if stripped == name {
		return "", false
	}
	for _, e := range m.entries {
		if stripped == e.Pattern {
			return e.Attr, true
		}
	}
	return "", false
}

// LookupDebian maps a declared Debian package name to a nixpkgs attribute.
func (m *Map) LookupDebian(name string) (string, bool) {
	if attr, ok := m.debian[name]; ok {
		return attr, true
	}

	cleaned := strings.TrimRightFunc(name, func(r rune) bool {
		return unicode.IsDigit(r) || r == '.' || r == '-'
	})
	if cleaned != name {
		if attr, ok := m.debian[cleaned]; ok {
			return attr, true
		}
	}

	if rest, found := strings.CutPrefix(cleaned, "lib"); found {
		if attr, ok := m.debian[rest]; ok {
			return attr, true
		}
	}

	return "", false
}

// Resolve implements ports.LibraryResolver.
func (m *Map) Resolve(_ context.Context, name string) (domain.IndexRecord, bool, error) {
	attr, ok := m.Lookup(name)
	if !ok {
		return domain.IndexRecord{}, false, nil
	}
	return domain.IndexRecord{
		OwningPackageRef: attr,
		MatchConfidence:  1.0,
	}, true, nil
}

// Source implements ports.LibraryResolver.
func (m *Map) Source() domain.ResolutionSource {
	return domain.SourceStatic
}

// TrimVersionSuffix removes the trailing dot-separated numeric components of
// a soname: libgtk-3.so.0 -> libgtk-3.so. Names without a version suffix
// are returned unchanged.
func TrimVersionSuffix(name string) string {
	for {
		idx := strings.LastIndexByte(name, '.')
		if idx < 0 || idx == len(name)-1 {
			return name
		}
		if !allDigits(name[idx+1:]) {
			return name
		}
		name = name[:idx]
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
