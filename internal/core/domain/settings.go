package domain

import "time"

// Settings is the validated runtime configuration for a conversion run.
type Settings struct {
	// Threshold is the minimum similarity score an index candidate must
	// reach to be accepted, in (0, 1].
	Threshold float64

	// QueryTimeout bounds a single file-ownership index query. On expiry
	// the query counts as a miss, never as a failure.
	QueryTimeout time.Duration

	// Workers bounds parallel scanning and resolution; 0 means NumCPU.
	Workers int

	// CacheDir holds the persistent index-query cache; empty disables it.
	CacheDir string

	// ExtraMapPath is an optional file of additional static map entries.
	ExtraMapPath string

	// OutputPath is where the generated expression is written.
	OutputPath string
}
