package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry is a no-op when dsn is empty. The returned func flushes
// buffered events and should be deferred by the caller.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr reports an unexpected error, tagged with the request it
// happened in
func CaptureErr(err error, requestID string) {
	if err == nil {
		return
	}

	sentry.WithScope(func(s *sentry.Scope) {
		if requestID != "" {
			s.SetTag("requestID", requestID)
		}
		sentry.CaptureException(err)
	})
}
