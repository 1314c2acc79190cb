package core

import (
	"fmt"
	"io"
	"net/http"
)

// UserAgent is sent with every request to Modrinth and the other services mrtool talks to
var UserAgent = "mrtool/mrtool"

// GetWithUA performs a GET request with mrtool's user agent, failing on non-2xx responses
func GetWithUA(url string, contentType string) (resp *http.Response, err error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", contentType)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	return resp, nil
}

// HTTPGetter fetches files over plain HTTP
type HTTPGetter struct{}

func (HTTPGetter) GetFile(url string) (io.ReadCloser, int64, error) {
	resp, err := GetWithUA(url, "application/octet-stream")
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.ContentLength, nil
}
