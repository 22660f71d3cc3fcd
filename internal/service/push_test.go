package service

import (
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/store"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, users store.Users, uid, role string, token *string) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &model.User{
		UID:   uid,
		Email: uid + "@medflow.test",
		Name:  uid,
		Role:  role,
	}))

	if token != nil {
		_, err := users.SetFCMToken(ctx, uid, token, time.Now().UTC())
		require.NoError(t, err)
	}
}

func ptr[T any](v T) *T { return &v }

func TestBroadcastPrunesOnlyInvalidTokens(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)

	seedUser(t, users, "s1", model.RoleStudent, ptr("tok-1"))
	seedUser(t, users, "s2", model.RoleStudent, ptr("tok-2"))
	seedUser(t, users, "s3", model.RoleStudent, ptr("tok-3"))

	sender := &fakeSender{reject: map[string]error{"tok-2": errUnregistered}}
	n := NewNotifier(users, sender)

	res, err := n.Broadcast(ctx, Notification{Title: "Exam", Body: "Tomorrow at 9"})
	require.NoError(t, err)
	assert.Equal(t, PushResult{SuccessCount: 2, FailureCount: 1, PrunedCount: 1}, *res)

	for uid, want := range map[string]*string{"s1": ptr("tok-1"), "s2": nil, "s3": ptr("tok-3")} {
		u, err := users.ByUID(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, want, u.FCMToken, uid)
	}
}

func TestTransientFailuresKeepTokens(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)

	seedUser(t, users, "s1", model.RoleStudent, ptr("tok-1"))

	sender := &fakeSender{reject: map[string]error{"tok-1": errors.New("unavailable")}}
	n := NewNotifier(users, sender)

	res, err := n.NotifyUser(ctx, "s1", Notification{Title: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, PushResult{FailureCount: 1}, *res)
	assert.Equal(t, []string{"tok-1"}, sender.singles, "exactly one attempt")

	u, err := users.ByUID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, ptr("tok-1"), u.FCMToken)
}

func TestNotifyUserPrunesInvalidToken(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)

	seedUser(t, users, "s1", model.RoleStudent, ptr("tok-1"))

	n := NewNotifier(users, &fakeSender{reject: map[string]error{"tok-1": errUnregistered}})

	res, err := n.NotifyUser(ctx, "s1", Notification{Title: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.PrunedCount)

	u, err := users.ByUID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, u.FCMToken)

	_, err = n.NotifyUser(ctx, "s1", Notification{Title: "Hi"})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = n.NotifyUser(ctx, "missing", Notification{Title: "Hi"})
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestNotifyRoleBatches(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)

	for i := range 501 {
		seedUser(t, users, fmt.Sprintf("a%03d", i), model.RoleAdmin, ptr(fmt.Sprintf("tok-%03d", i)))
	}
	seedUser(t, users, "student", model.RoleStudent, ptr("tok-student"))

	sender := &fakeSender{}
	n := NewNotifier(users, sender)

	res, err := n.NotifyRole(ctx, model.RoleAdmin, Notification{Title: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, 501, res.SuccessCount)

	require.Len(t, sender.batches, 2)
	assert.Len(t, sender.batches[0], 500)
	assert.Len(t, sender.batches[1], 1)
	for _, b := range sender.batches {
		assert.NotContains(t, b, "tok-student")
	}
}

func TestWholeBatchFailure(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)

	seedUser(t, users, "s1", model.RoleStudent, ptr("tok-1"))
	seedUser(t, users, "s2", model.RoleStudent, ptr("tok-2"))

	n := NewNotifier(users, &fakeSender{batchFail: errors.New("quota exceeded")})

	res, err := n.Broadcast(ctx, Notification{Body: "x"})
	require.NoError(t, err)
	assert.Equal(t, PushResult{FailureCount: 2}, *res)

	tokens, err := users.FCMTokens(ctx, "")
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
}

func TestEmptyNotificationRejected(t *testing.T) {
	n := NewNotifier(newUsers(t), &fakeSender{})

	_, err := n.Broadcast(context.Background(), Notification{})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestNoopSender(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)
	seedUser(t, users, "s1", model.RoleStudent, ptr("tok-1"))

	res, err := NewNotifier(users, NoopSender{}).Broadcast(ctx, Notification{Title: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.FailureCount)
	assert.Zero(t, res.PrunedCount)
}
