package service

import (
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/pkg/security"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistration(t *testing.T) (*Registration, *fakeMailer, *clock) {
	t.Helper()

	mail := &fakeMailer{}
	clk := newClock()

	r := NewRegistration(newUsers(t), mail, fakeIdentity{"good-id-token": "uid-1"}, testConfig())
	r.now = clk.now

	return r, mail, clk
}

func student() Profile {
	return Profile{UID: "uid-1", Email: "student@medflow.test", Name: "Ana", Role: "student"}
}

// tokenFromMail pulls the token out of the approval link sent to the admin
func tokenFromMail(t *testing.T, m sentMail) string {
	t.Helper()

	start := strings.Index(m.Body, "https://")
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(m.Body[start:], `"`)
	require.Greater(t, end, 0)

	link, err := url.Parse(m.Body[start : start+end])
	require.NoError(t, err)
	assert.Equal(t, "/api/users/verify", link.Path)

	return link.Query().Get("token")
}

func TestCreateOrGetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r, mail, _ := newRegistration(t)

	first, created, err := r.CreateOrGet(ctx, student())
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, first.Verified)
	require.NotNil(t, first.VerificationToken)
	assert.Len(t, *first.VerificationToken, 64)

	again := student()
	again.Name = "Someone else"
	second, created, err := r.CreateOrGet(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ana", second.Name)

	all, err := r.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.Len(t, mail.sent, 1, "only the first registration mails the admin")
	assert.Equal(t, "admin@medflow.test", mail.sent[0].To)
	assert.Equal(t, *first.VerificationToken, tokenFromMail(t, mail.sent[0]))
}

func TestCreateOrGetValidates(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newRegistration(t)

	cases := map[string]Profile{
		"missing uid":   {Email: "a@medflow.test", Name: "A"},
		"bad email":     {UID: "u", Email: "nope", Name: "A"},
		"missing name":  {UID: "u", Email: "a@medflow.test"},
		"unknown role":  {UID: "u", Email: "a@medflow.test", Name: "A", Role: "teacher"},
		"blank uid pad": {UID: "   ", Email: "a@medflow.test", Name: "A"},
	}

	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := r.CreateOrGet(ctx, p)

			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestCreateOrGetDefaultsToStudent(t *testing.T) {
	r, _, _ := newRegistration(t)

	p := student()
	p.Role = ""

	u, _, err := r.CreateOrGet(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, u.Role)
}

func TestRegistrationSurvivesMailFailure(t *testing.T) {
	r, mail, _ := newRegistration(t)
	mail.err = errors.New("smtp down")

	u, created, err := r.CreateOrGet(context.Background(), student())
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotNil(t, u.VerificationToken)
}

func TestVerifyIsSingleUse(t *testing.T) {
	ctx := context.Background()
	r, mail, _ := newRegistration(t)

	u, _, err := r.CreateOrGet(ctx, student())
	require.NoError(t, err)
	token := *u.VerificationToken

	verified, err := r.Verify(ctx, "uid-1", token)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Nil(t, verified.VerificationToken)

	require.Len(t, mail.sent, 2)
	assert.Equal(t, "student@medflow.test", mail.sent[1].To)

	_, err = r.Verify(ctx, "uid-1", token)
	assert.ErrorIs(t, err, ErrInvalidVerification)
}

func TestVerifyFailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	r, _, clk := newRegistration(t)

	u, _, err := r.CreateOrGet(ctx, student())
	require.NoError(t, err)

	_, wrongToken := r.Verify(ctx, "uid-1", "not-the-token")
	_, unknownUser := r.Verify(ctx, "uid-404", *u.VerificationToken)
	_, empty := r.Verify(ctx, "", "")

	clk.advance(25 * time.Hour)
	_, expired := r.Verify(ctx, "uid-1", *u.VerificationToken)

	for _, err := range []error{wrongToken, unknownUser, empty, expired} {
		assert.Equal(t, ErrInvalidVerification, err)
	}

	stored, err := r.users.ByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.False(t, stored.Verified)
}

func TestResendVerification(t *testing.T) {
	ctx := context.Background()
	r, mail, clk := newRegistration(t)

	u, _, err := r.CreateOrGet(ctx, student())
	require.NoError(t, err)
	oldToken := *u.VerificationToken

	assert.ErrorIs(t, r.ResendVerification(ctx, "uid-1"), ErrCooldown)

	clk.advance(6 * time.Minute)
	require.NoError(t, r.ResendVerification(ctx, "uid-1"))
	require.Len(t, mail.sent, 2)

	newToken := tokenFromMail(t, mail.sent[1])
	assert.NotEqual(t, oldToken, newToken)

	_, err = r.Verify(ctx, "uid-1", oldToken)
	assert.ErrorIs(t, err, ErrInvalidVerification)

	_, err = r.Verify(ctx, "uid-1", newToken)
	require.NoError(t, err)

	clk.advance(time.Hour)
	var ve *ValidationError
	assert.ErrorAs(t, r.ResendVerification(ctx, "uid-1"), &ve)

	var nf *NotFoundError
	assert.ErrorAs(t, r.ResendVerification(ctx, "uid-404"), &nf)
}

func TestGetRole(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newRegistration(t)

	p := student()
	p.Role = model.RoleAdmin
	_, _, err := r.CreateOrGet(ctx, p)
	require.NoError(t, err)

	role, err := r.GetRole(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	_, err = r.GetRole(ctx, "uid-404")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestIssueSession(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newRegistration(t)

	u, _, err := r.CreateOrGet(ctx, student())
	require.NoError(t, err)

	_, err = r.IssueSession(ctx, "good-id-token")
	assert.ErrorIs(t, err, ErrNotVerified)

	_, err = r.IssueSession(ctx, "forged")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = r.Verify(ctx, "uid-1", *u.VerificationToken)
	require.NoError(t, err)

	s, err := r.IssueSession(ctx, "good-id-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", s.User.UID)

	claims, err := security.ParseSession("test-secret", s.Token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UID)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestTokenCleanupClearsExpired(t *testing.T) {
	ctx := context.Background()
	r, _, clk := newRegistration(t)

	_, _, err := r.CreateOrGet(ctx, student())
	require.NoError(t, err)

	n, err := TokenCleanup(ctx, r.users, clk.now())
	require.NoError(t, err)
	assert.Zero(t, n)

	clk.advance(25 * time.Hour)
	n, err = TokenCleanup(ctx, r.users, clk.now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	u, err := r.users.ByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Nil(t, u.VerificationToken)
	assert.False(t, u.Verified)
}
