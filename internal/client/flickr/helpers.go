package flickr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/oshokin/flickr-mirror/internal/logger"
	"github.com/oshokin/flickr-mirror/internal/utils"
)

// callMethod invokes a REST method, retrying transient failures.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func callMethod[T any](
	c *ClientImpl,
	ctx context.Context,
	method string,
	query url.Values,
) (*FetchJSONResult[T], error) {
	query.Set("method", method)
	query.Set("api_key", c.cfg.APIKey)
	query.Set("format", "json")
	query.Set("nojsoncallback", "1")

	attempts := max(c.cfg.RetryAttemptsCount, 1)

	var (
		result *FetchJSONResult[T]
		err    error
	)

	for i := range attempts {
		if c.limiter != nil {
			if err = c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		result, err = fetchJSONWithQuery[T](c, ctx, query)
		if err == nil {
			break
		}

		if i == attempts-1 || !isTransient(result, err) {
			return nil, fmt.Errorf("%s: %w", method, err)
		}

		logger.Warnf(ctx, "Retrying %s due to error (%d attempts left): %v", method, attempts-i-1, err)

		if err = utils.RandomPause(ctx, c.cfg.ParsedMinRetryPause, c.cfg.ParsedMaxRetryPause); err != nil {
			return nil, err
		}
	}

	if response, ok := any(result.Data).(apiResponse); ok {
		if status := response.status(); status.Stat != statusOK {
			return nil, &APIError{Method: method, Code: status.Code, Message: status.Message}
		}
	}

	return result, nil
}

// fetchJSONWithQuery performs a single GET against the REST endpoint.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSONWithQuery[T any](
	c *ClientImpl,
	ctx context.Context,
	query url.Values,
) (*FetchJSONResult[T], error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.restURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	request.URL.RawQuery = query.Encode()

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	var result T
	if err = json.NewDecoder(response.Body).Decode(&result); err != nil {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, fmt.Errorf("failed to decode response: %w", err)
	}

	return &FetchJSONResult[T]{
		Data:       &result,
		StatusCode: response.StatusCode,
	}, nil
}

// isTransient reports whether a failed call is worth repeating.
func isTransient[T any](result *FetchJSONResult[T], err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// No response at all means a network failure.
	if result == nil {
		return true
	}

	// Client errors and undecodable bodies will not change on retry.
	return result.StatusCode == http.StatusTooManyRequests ||
		result.StatusCode >= http.StatusInternalServerError
}
