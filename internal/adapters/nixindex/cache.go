package nixindex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// diskCache persists query results across runs so repeated conversions do
// not re-query a slow index. Cache failures are silent: a cold lookup is
// always a valid answer.
type diskCache struct {
	dir string
}

func newDiskCache(dir string) *diskCache {
	return &diskCache{dir: dir}
}

func (c *diskCache) keyPath(query string) string {
	return filepath.Join(c.dir, fmt.Sprintf("locate-%016x.json", xxhash.Sum64String(query)))
}

func (c *diskCache) get(query string) ([]Hit, bool) {
	data, err := os.ReadFile(c.keyPath(query))
	if err != nil {
		return nil, false
	}
	var hits []Hit
	if err := json.Unmarshal(data, &hits); err != nil {
		return nil, false
	}
	return hits, true
}

// put writes atomically via rename so a concurrent run never observes a
// partially written entry.
func (c *diskCache) put(query string, hits []Hit) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return
	}
	data, err := json.Marshal(hits)
	if err != nil {
		return
	}

	tmp, err := os.CreateTemp(c.dir, "locate-*.tmp")
	if err != nil {
		return
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return
	}
	_ = os.Rename(tmp.Name(), c.keyPath(query))
}
