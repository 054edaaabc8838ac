package utils

import (
	"fmt"
	"io"
	"net/http"
)

// Browser identity sent to endpoints that reject non-browser clients
const (
	BROWSER_USER_AGENT = "Mozilla/5.0 (Windows NT 6.1; WOW64; rv:28.0) Gecko/20100101 Firefox/28.0"
)

// StatusError is returned for 4xx and 5xx responses
type StatusError struct {
	URL        string
	Status     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.URL, e.Status)
}

// CheckResponse drains and closes the body of a failed response and returns a
// StatusError. The reported URL has no query string.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 400 && resp.StatusCode < 600 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		u := *resp.Request.URL
		u.RawQuery = ""
		return &StatusError{
			URL:        u.Redacted(),
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}

// SetBrowserHeaders makes a request look like it came from the site's own web page
func SetBrowserHeaders(req *http.Request, site string) {
	req.Header.Set("Origin", site)
	req.Header.Set("Referer", site)
	req.Header.Set("User-Agent", BROWSER_USER_AGENT)
}
