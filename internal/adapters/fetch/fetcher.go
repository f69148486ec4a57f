// Package fetch obtains package archives from URLs or the local filesystem
// and pins their Nix-compatible hash.
package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/deb2nix/internal/core/ports"
	"go.trai.ch/zerr"
)

const userAgent = "deb2nix/1.0"

// PrefetchFunc computes the Nix base32 sha256 of a local file. The default
// shells out to nix-prefetch-url so the hash matches what fetchurl expects.
type PrefetchFunc func(ctx context.Context, localPath string) (string, error)

// Fetcher implements ports.Fetcher.
type Fetcher struct {
	logger   ports.Logger
	client   *http.Client
	prefetch PrefetchFunc
}

// NewFetcher creates a Fetcher with a bounded download timeout.
func NewFetcher(logger ports.Logger) *Fetcher {
	return &Fetcher{
		logger:   logger,
		client:   &http.Client{Timeout: 5 * time.Minute},
		prefetch: prefetchHash,
	}
}

// SetPrefetchFunc replaces the hash implementation. Used by tests.
func (f *Fetcher) SetPrefetchFunc(p PrefetchFunc) {
	f.prefetch = p
}

// Fetch resolves source to a local archive and its pinned sha256. URLs are
// downloaded; anything else is treated as a filesystem path.
func (f *Fetcher) Fetch(ctx context.Context, source string) (domain.FetchInfo, error) {
	info := domain.FetchInfo{}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		local, err := f.download(ctx, source)
		if err != nil {
			return domain.FetchInfo{}, err
		}
		info.URL = source
		info.LocalPath = local
	} else {
		abs, err := filepath.Abs(source)
		if err != nil {
			return domain.FetchInfo{}, zerr.Wrap(err, "failed to resolve archive path")
		}
		if _, err := os.Stat(abs); err != nil {
			return domain.FetchInfo{}, zerr.Wrap(err, "archive not found")
		}
		info.LocalPath = abs
	}

	hash, err := f.prefetch(ctx, info.LocalPath)
	if err != nil {
		return domain.FetchInfo{}, zerr.Wrap(err, "failed to pin archive hash")
	}
	info.SHA256 = hash

	return info, nil
}

func (f *Fetcher) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", zerr.Wrap(err, "failed to build download request")
	}
	req.Header.Set("User-Agent", userAgent)

	f.logger.Info("downloading " + url)
	resp, err := f.client.Do(req)
	if err != nil {
		return "", zerr.Wrap(err, "download failed")
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return "", zerr.With(zerr.With(zerr.New("unexpected download status"),
			"status", resp.Status), "url", url)
	}

	name := path.Base(url)
	if name == "" || name == "." || name == "/" {
		name = "package.deb"
	}
	dest := filepath.Join(os.TempDir(), name)

	out, err := os.Create(dest) //nolint:gosec // temp-dir destination
	if err != nil {
		return "", zerr.Wrap(err, "failed to create download target")
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return "", zerr.Wrap(err, "download interrupted")
	}
	if err := out.Close(); err != nil {
		return "", zerr.Wrap(err, "failed to finalize download")
	}
	return dest, nil
}

// prefetchHash copies the file into the Nix store and returns the base32
// sha256 that fetchurl will verify against.
func prefetchHash(ctx context.Context, localPath string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "nix-prefetch-url", "file://"+localPath)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", zerr.With(zerr.Wrap(err, "nix-prefetch-url failed"),
			"stderr", strings.TrimSpace(stderr.String()))
	}
	hash := strings.TrimSpace(stdout.String())
	if hash == "" {
		return "", zerr.New("nix-prefetch-url produced no hash")
	}
	return hash, nil
}
