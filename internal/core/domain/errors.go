package domain

import "go.trai.ch/zerr"

var (
	// ErrStaticMapMalformed is returned when the bundled static library map
	// cannot be parsed. The map is foundational, so this aborts startup.
	ErrStaticMapMalformed = zerr.New("static library map is malformed")

	// ErrUnsupportedFormat is returned for package archives that are not
	// Debian packages.
	ErrUnsupportedFormat = zerr.New("unsupported package format")

	// ErrToolUnprovisionable is returned when escalation cannot provide a
	// required external tool.
	ErrToolUnprovisionable = zerr.New("required tool could not be provisioned")

	// ErrEscalationLoop is returned when the controller detects it is
	// already running inside a provisioned context that still lacks tools.
	// This is a logic error and must halt rather than re-invoke again.
	ErrEscalationLoop = zerr.New("escalation re-entered inside provisioned context")

	// ErrIndexUnavailable is returned when the file-ownership index cannot
	// be queried at all (missing binary, no database).
	ErrIndexUnavailable = zerr.New("file-ownership index unavailable")

	// ErrMetadataMissing is returned when a .deb carries no control file.
	ErrMetadataMissing = zerr.New("package control metadata missing")
)
