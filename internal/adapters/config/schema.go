package config

// File represents the structure of the deb2nix.yaml configuration file.
type File struct {
	Resolver  ResolverDTO `yaml:"resolver"`
	StaticMap StaticDTO   `yaml:"staticMap"`
	Output    OutputDTO   `yaml:"output"`
}

// ResolverDTO holds the tunables of the indexed resolver.
type ResolverDTO struct {
	Threshold    float64 `yaml:"threshold"`
	QueryTimeout string  `yaml:"queryTimeout"`
	Workers      int     `yaml:"workers"`
	CacheDir     string  `yaml:"cacheDir"`
}

// StaticDTO points at an optional file of additional map entries, checked
// after the bundled table.
type StaticDTO struct {
	Extra string `yaml:"extra"`
}

// OutputDTO controls where the generated expression is written.
type OutputDTO struct {
	Path string `yaml:"path"`
}
