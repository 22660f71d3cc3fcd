package service

import (
	"bitwise74/medflow-api/config"
	"bitwise74/medflow-api/internal/store"
	"bitwise74/medflow-api/internal/testutil/testdb"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

type sentMail struct {
	To, Subject, Body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

var errUnregistered = errors.New("registration-token-not-registered")

// fakeSender fails tokens listed in reject with the given error
type fakeSender struct {
	mu        sync.Mutex
	reject    map[string]error
	batches   [][]string
	singles   []string
	batchFail error
}

func (f *fakeSender) Send(_ context.Context, token string, _ Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.singles = append(f.singles, token)
	return f.reject[token]
}

func (f *fakeSender) SendMulticast(_ context.Context, tokens []string, _ Notification) ([]error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.batches = append(f.batches, append([]string(nil), tokens...))
	if f.batchFail != nil {
		return nil, f.batchFail
	}

	errs := make([]error, len(tokens))
	for i, t := range tokens {
		errs[i] = f.reject[t]
	}

	return errs, nil
}

func (f *fakeSender) IsTokenInvalid(err error) bool {
	return errors.Is(err, errUnregistered)
}

type fakeImages struct {
	mu        sync.Mutex
	stored    map[string]string
	deleted   []string
	deleteErr error
}

func newFakeImages() *fakeImages {
	return &fakeImages{stored: map[string]string{}}
}

func (f *fakeImages) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	url := "https://cdn.medflow.test/" + key
	f.stored[url] = string(b)
	return url, nil
}

func (f *fakeImages) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, url)
	if f.deleteErr != nil {
		return f.deleteErr
	}

	delete(f.stored, url)
	return nil
}

type fakeIdentity map[string]string

func (f fakeIdentity) VerifyIDToken(_ context.Context, idToken string) (string, error) {
	uid, ok := f[idToken]
	if !ok {
		return "", errors.New("token rejected")
	}

	return uid, nil
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.Host.Domain = "api.medflow.test"
	c.Host.SSLEnabled = true
	c.Mail.AdminAddress = "admin@medflow.test"
	c.Verification.TokenTTL = 24 * time.Hour
	c.Verification.ResendCooldown = 5 * time.Minute
	c.JWT.Secret = "test-secret"
	c.JWT.TTL = time.Hour
	c.Catalog.DefaultCategory = "General"
	return c
}

// clock is a controllable time source for services
type clock struct{ t time.Time }

func (c *clock) now() time.Time              { return c.t }
func (c *clock) advance(d time.Duration)     { c.t = c.t.Add(d) }
func newClock() *clock                       { return &clock{t: time.Now().UTC()} }
func newUsers(t *testing.T) *store.UserStore { return store.NewUserStore(testdb.New(t)) }
