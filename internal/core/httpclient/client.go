package httpclient

import (
	"net/http"
	"time"

	"delivery-tracker/internal/core/logger"

	"go.uber.org/zap"
)

// loggingRoundTripper logs every outbound request. The WooCommerce and
// routing adapters share it so upstream latency is visible per call.
type loggingRoundTripper struct {
	next http.RoundTripper
}

// RoundTrip executes the request and logs method, URL, status and duration.
func (lrt *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	logger.Get().Debug("Outbound request started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := lrt.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		logger.Get().Error("Outbound request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Debug("Outbound request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware and the given
// overall timeout.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &loggingRoundTripper{next: http.DefaultTransport},
		Timeout:   timeout,
	}
}
