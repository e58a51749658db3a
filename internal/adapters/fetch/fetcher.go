// Package fetch resolves a repository-relative path containing a
// compression-extension placeholder into a locally cached file, trying a
// fixed sequence of candidate extensions and supporting both local
// (file://-or-bare) and remote (http(s)://) repository roots.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

// candidateExtensions is the stable probing order for the compression slot,
// per the fetcher's documented contract (§9): most-compressed first, with
// an uncompressed fallback last.
var candidateExtensions = []string{"xz", "bz2", "gz", ""}

// Fetcher implements usecases.Fetcher.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

var _ usecases.Fetcher = (*Fetcher)(nil)

// NewFetcher creates a Fetcher with the given per-request timeout applied
// to remote downloads.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Fetch resolves root+relativePathWithFormatSlot into a local path, trying
// candidateExtensions in order. relativePathWithFormatSlot must contain
// exactly one "%s" verb where the extension is substituted. For remote
// roots, a candidate already downloaded into tmpDir is returned before any
// HTTP request is made.
func (f *Fetcher) Fetch(ctx context.Context, root, tmpDir, relativePathWithFormatSlot string) (string, error) {
	remote, baseURL := isRemote(root)

	if remote {
		for _, ext := range candidateExtensions {
			cachedPath := filepath.Join(tmpDir, filepath.FromSlash(substituteExtension(relativePathWithFormatSlot, ext)))
			if info, err := os.Stat(cachedPath); err == nil && info.Size() > 0 {
				return cachedPath, nil
			}
		}
	}

	var lastErr error
	for _, ext := range candidateExtensions {
		relPath := substituteExtension(relativePathWithFormatSlot, ext)

		if !remote {
			localPath := filepath.Join(strings.TrimPrefix(root, "file://"), relPath)
			if info, err := os.Stat(localPath); err == nil && info.Size() > 0 {
				return localPath, nil
			}
			continue
		}

		cachedPath := filepath.Join(tmpDir, filepath.FromSlash(relPath))
		if info, err := os.Stat(cachedPath); err == nil && info.Size() > 0 {
			return cachedPath, nil
		}

		if err := f.download(ctx, baseURL+"/"+relPath, cachedPath); err != nil {
			lastErr = err
			continue
		}
		return cachedPath, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: %s (last error: %v)", entities.ErrNotFound, relativePathWithFormatSlot, lastErr)
	}
	return "", fmt.Errorf("%w: %s", entities.ErrNotFound, relativePathWithFormatSlot)
}

func (f *Fetcher) download(ctx context.Context, url, destPath string) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create tmp dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*")
	if err != nil {
		return fmt.Errorf("create tmp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write tmp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close tmp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), destPath); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// isRemote reports whether root carries an http(s):// scheme, returning
// root without any trailing "/" as the base URL for remote roots.
func isRemote(root string) (bool, string) {
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		return true, strings.TrimSuffix(root, "/")
	}
	return false, ""
}

// substituteExtension fills the %s slot with ext, trimming a now-dangling
// trailing "." when ext is empty (the uncompressed candidate).
func substituteExtension(pathWithSlot, ext string) string {
	filled := fmt.Sprintf(pathWithSlot, ext)
	if ext == "" {
		filled = strings.TrimSuffix(filled, ".")
	}
	return filled
}
