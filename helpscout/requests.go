package helpscout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// request performs a single authenticated GET and classifies any failure.
func (api *API) request(ctx context.Context, url *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("helpscout: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")

	// The Docs API wants the token as the basic-auth username; the
	// password is ignored but must be present.
	req.SetBasicAuth(api.token, "x")

	api.throttle()

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, &Error{
			Kind:    KindTransient,
			Message: "couldn't perform http request",
			Err:     err,
		}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &Error{
			Kind:       KindTransient,
			StatusCode: response.StatusCode,
			Message:    "couldn't read http response body",
			Err:        err,
		}
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("helpscout: couldn't close response body: %w", err)
	}

	switch {
	case response.StatusCode >= 200 && response.StatusCode < 300:
		return body, nil
	case response.StatusCode == http.StatusUnauthorized, response.StatusCode == http.StatusForbidden:
		return nil, &Error{
			Kind:       KindAuth,
			StatusCode: response.StatusCode,
			Message:    "authentication failed",
		}
	case response.StatusCode == http.StatusNotFound:
		return nil, &Error{
			Kind:       KindNotFound,
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("resource not found: %s", url.Path),
		}
	case response.StatusCode >= 500:
		return nil, &Error{
			Kind:       KindTransient,
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("server error: %s", response.Status),
		}
	}

	return nil, &Error{
		Kind:       KindMalformed,
		StatusCode: response.StatusCode,
		Message:    fmt.Sprintf("unexpected HTTP response status: %s", response.Status),
	}
}

// unmarshalResponse decodes an API response body, mapping decode failures to
// a malformed-response error rather than leaking raw json errors.
func unmarshalResponse(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &Error{
			Kind:    KindMalformed,
			Message: "couldn't parse json response",
			Err:     err,
		}
	}
	return nil
}
