package ingest

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/lox/crimereport/internal/metrics"
)

const fetchTimeout = 10 * time.Minute

// Download retrieves a dataset from an http(s) or ftp URL into dest.
// Transient HTTP failures are retried with exponential backoff; 4xx responses
// are permanent.
func Download(rawURL, dest string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return httpDownload(u, dest)
	case "ftp":
		return ftpDownload(u, dest)
	default:
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func httpDownload(u *url.URL, dest string) error {
	client := &http.Client{Timeout: fetchTimeout}

	operation := func() error {
		resp, err := client.Get(u.String())
		if err != nil {
			metrics.FetchesTotal.WithLabelValues(u.Scheme, "error").Inc()
			return fmt.Errorf("fetch dataset: %w", err)
		}
		defer resp.Body.Close()
		metrics.FetchesTotal.WithLabelValues(u.Scheme, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("fetch dataset: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return backoff.Permanent(fmt.Errorf("fetch dataset: status %d: %s", resp.StatusCode, string(b)))
		}

		return writeFile(dest, resp.Body)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 5 * time.Minute
	return backoff.Retry(operation, bo)
}

func writeFile(dest string, r io.Reader) error {
	f, err := os.Create(dest)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create %s: %w", dest, err))
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return f.Close()
}
