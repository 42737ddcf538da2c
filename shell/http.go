package shell

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient has no overall timeout so that large downloads may stream
// for as long as they keep making progress.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   8 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          64,
			MaxIdleConnsPerHost:   32,
			IdleConnTimeout:       32 * time.Second,
			TLSHandshakeTimeout:   16 * time.Second,
			ResponseHeaderTimeout: 32 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}
