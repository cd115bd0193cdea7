// Package fetch downloads pathway dumps and unpacks the archive formats the
// providers ship: zip for WikiPathways, tar.bz2 for Reactome, gzip for
// single compressed files. Downloads are cached, an existing destination
// file is reused unless the caller forces a refresh.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/openpathway/pathway-analyzer/pkg/logging"
)

// Fetcher downloads files over HTTP.
type Fetcher struct {
	client *http.Client
	log    *slog.Logger
}

// New returns a fetcher with a generous timeout, the RDF dumps run to
// hundreds of megabytes.
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Minute},
		log:    logging.New("fetch"),
	}
}

// Download fetches url into dest. A file already present at dest is reused
// unless force is set. The download streams through a temporary file so a
// failed transfer never leaves a truncated destination behind.
func (f *Fetcher) Download(ctx context.Context, url, dest string, force bool) error {
	if _, err := os.Stat(dest); err == nil && !force {
		f.log.Info("using cached file", "path", dest)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	f.log.Info("downloading", "url", url, "dest", dest)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s returned status %d", url, resp.StatusCode)
	}

	part := dest + ".part"
	out, err := os.Create(part)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", part, err)
	}

	bar := progressbar.DefaultBytes(resp.ContentLength, filepath.Base(dest))
	_, err = io.Copy(io.MultiWriter(out, bar), resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(part)
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	if err := os.Rename(part, dest); err != nil {
		return fmt.Errorf("failed to move download into place: %w", err)
	}
	return nil
}
