package ingest

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/lox/crimereport/internal/metrics"
)

// ftpDownload retrieves a dataset over FTP. Anonymous login is used unless
// the URL carries credentials. Open-data portals still publish bulk CSV
// drops this way.
func ftpDownload(u *url.URL, dest string) error {
	host := u.Host
	if u.Port() == "" {
		host += ":21"
	}

	conn, err := ftp.Dial(host, ftp.DialWithTimeout(30*time.Second))
	if err != nil {
		metrics.FetchesTotal.WithLabelValues("ftp", "error").Inc()
		return fmt.Errorf("ftp dial: %w", err)
	}
	defer conn.Quit()

	user, pass := "anonymous", "anonymous"
	if u.User != nil {
		user = u.User.Username()
		if p, ok := u.User.Password(); ok {
			pass = p
		}
	}
	if err := conn.Login(user, pass); err != nil {
		metrics.FetchesTotal.WithLabelValues("ftp", "error").Inc()
		return fmt.Errorf("ftp login: %w", err)
	}

	resp, err := conn.Retr(u.Path)
	if err != nil {
		metrics.FetchesTotal.WithLabelValues("ftp", "error").Inc()
		return fmt.Errorf("ftp retr %s: %w", u.Path, err)
	}
	defer resp.Close()

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(f, resp); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("write %s: %w", dest, err)
	}
	metrics.FetchesTotal.WithLabelValues("ftp", "ok").Inc()
	return f.Close()
}
