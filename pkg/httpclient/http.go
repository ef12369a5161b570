package httpclient

import (
	"context"
	"net/http"
)

// BaseResponse carries the raw response alongside the decoded result.
type BaseResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// HTTPClient is a thin abstraction over the underlying HTTP library so that
// repositories can be tested without network access.
type HTTPClient interface {
	Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*BaseResponse, error)
}
