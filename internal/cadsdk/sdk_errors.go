package cadsdk

import (
	"errors"
	"fmt"

	"github.com/imroc/req/v3"
)

var (
	ErrNoBaseURL     = errors.New("sdk: base url missing")
	ErrNoCredentials = errors.New("sdk: api credentials missing")
)

// APIError is the error payload returned by the platform API.
type APIError struct {
	Status     int    `json:"status"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	MoreInfo   string `json:"moreInfoUrl"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: http %d - %s", e.HTTPStatus, e.Message)
}

// IsNotFound reports whether the error is a remote 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.HTTPStatus == 404
}

// IsUnauthorized reports whether the error is a remote 401/403.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.HTTPStatus == 401 || apiErr.HTTPStatus == 403)
}

// handleAPIError folds the request error and error-state response into one error.
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("http request error: %s: %w", operation, requestErr)
	}

	// got a response, but api returned an error
	if resp.IsErrorState() {
		if apiErr, ok := resp.ErrorResult().(*APIError); ok {
			apiErr.HTTPStatus = resp.StatusCode
			return fmt.Errorf("%s: %w", operation, apiErr)
		}
		return fmt.Errorf("api error: %s: http %d", operation, resp.StatusCode)
	}

	return nil
}
