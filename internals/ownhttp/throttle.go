package ownhttp

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ThrottleTransport waits for the limiter before every request
type ThrottleTransport struct {
	T       http.RoundTripper
	limiter *rate.Limiter
}

func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := tt.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	return tt.T.RoundTrip(req)
}

func NewThrottleTransport(T http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &ThrottleTransport{T, limiter}
}

// NewThrottled returns a client like New that sends at most one request per
// interval (with bursts up to burst requests)
func NewThrottled(interval time.Duration, burst int) *http.Client {
	limiter := rate.NewLimiter(rate.Every(interval), burst)
	return &http.Client{
		Transport: NewThrottleTransport(NewAddHeaderTransport(nil), limiter),
	}
}
