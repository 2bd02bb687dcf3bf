package helpscout

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the Help Scout Docs API host.  All endpoints live under
// /v1 on this host.
const DefaultBaseURL = "https://docsapi.helpscout.net"

func NewAPI(baseURL string, token string) (*API, error) {
	if token == "" {
		return nil, fmt.Errorf("helpscout: auth token is empty, set HELPSCOUTAUTH or --token")
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("helpscout: couldn't parse REST API URL: %w", err)
	}

	a := &API{
		BaseURI: u,
		token:   token,
		Retry:   DefaultRetryConfig(),
		Logger:  zerolog.Nop(),
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// The Docs API host, e.g. https://docsapi.helpscout.net
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Retry policy for transient failures.
	Retry RetryConfig

	// RequestDelay spaces out consecutive requests, to be gentle on the
	// API.  Zero means no throttling.
	RequestDelay time.Duration

	Logger zerolog.Logger

	// Auth: the API token goes in as the basic-auth username, with a
	// dummy password.  That's the Docs API convention.
	token string

	mu          sync.Mutex
	lastRequest time.Time
}

// throttle blocks until RequestDelay has passed since the previous request.
func (api *API) throttle() {
	if api.RequestDelay <= 0 {
		return
	}

	api.mu.Lock()
	wait := api.RequestDelay - time.Since(api.lastRequest)
	if !api.lastRequest.IsZero() && wait > 0 {
		time.Sleep(wait)
	}
	api.lastRequest = time.Now()
	api.mu.Unlock()
}
