package store_test

import (
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/store"
	"bitwise74/medflow-api/internal/testutil/testdb"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUserStoreConsumeToken(t *testing.T) {
	ctx := context.Background()
	users := store.NewUserStore(testdb.New(t))

	now := time.Now().UTC()
	require.NoError(t, users.Create(ctx, &model.User{
		UID:               "uid-1",
		Email:             "s@medflow.test",
		Name:              "Student",
		Role:              model.RoleStudent,
		VerificationToken: ptr("secret"),
		TokenIssuedAt:     &now,
		TokenExpiresAt:    ptr(now.Add(time.Hour)),
	}))

	ok, err := users.ConsumeToken(ctx, "uid-1", "wrong", now)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = users.ConsumeToken(ctx, "uid-1", "secret", now)
	require.NoError(t, err)
	assert.True(t, ok)

	u, err := users.ByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.True(t, u.Verified)
	assert.Nil(t, u.VerificationToken)

	ok, err = users.ConsumeToken(ctx, "uid-1", "secret", now)
	require.NoError(t, err)
	assert.False(t, ok, "token must be single use")
}

func TestUserStoreExpiredToken(t *testing.T) {
	ctx := context.Background()
	users := store.NewUserStore(testdb.New(t))

	issued := time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, users.Create(ctx, &model.User{
		UID:               "uid-1",
		Email:             "s@medflow.test",
		Name:              "Student",
		Role:              model.RoleStudent,
		VerificationToken: ptr("secret"),
		TokenIssuedAt:     &issued,
		TokenExpiresAt:    ptr(issued.Add(24 * time.Hour)),
	}))

	ok, err := users.ConsumeToken(ctx, "uid-1", "secret", time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := users.ClearExpiredTokens(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	u, err := users.ByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Nil(t, u.VerificationToken)
	assert.Nil(t, u.TokenIssuedAt)
	assert.Nil(t, u.TokenExpiresAt)
	assert.False(t, u.Verified)
}

func TestUserStoreDuplicateUID(t *testing.T) {
	ctx := context.Background()
	users := store.NewUserStore(testdb.New(t))

	u := model.User{UID: "uid-1", Email: "a@medflow.test", Name: "A", Role: model.RoleStudent}
	require.NoError(t, users.Create(ctx, &u))

	dup := model.User{UID: "uid-1", Email: "b@medflow.test", Name: "B", Role: model.RoleStudent}
	assert.ErrorIs(t, users.Create(ctx, &dup), store.ErrDuplicate)
}

func TestUserStorePushTokens(t *testing.T) {
	ctx := context.Background()
	users := store.NewUserStore(testdb.New(t))
	now := time.Now().UTC()

	for _, u := range []model.User{
		{UID: "a1", Email: "a1@medflow.test", Name: "Admin", Role: model.RoleAdmin},
		{UID: "s1", Email: "s1@medflow.test", Name: "S1", Role: model.RoleStudent},
		{UID: "s2", Email: "s2@medflow.test", Name: "S2", Role: model.RoleStudent},
	} {
		require.NoError(t, users.Create(ctx, &u))
	}

	_, err := users.SetFCMToken(ctx, "a1", ptr("tok-a1"), now)
	require.NoError(t, err)
	_, err = users.SetFCMToken(ctx, "s1", ptr("tok-s1"), now)
	require.NoError(t, err)

	admins, err := users.FCMTokens(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-a1"}, admins)

	all, err := users.FCMTokens(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tok-a1", "tok-s1"}, all)

	n, err := users.PruneFCMToken(ctx, "tok-s1", now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	s1, err := users.ByUID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, s1.FCMToken)

	_, err = users.SetFCMToken(ctx, "missing", ptr("x"), now)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCategoryStoreDeleteFallsBack(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	categories := store.NewCategoryStore(db)
	devices := store.NewDeviceStore(db)
	tips := store.NewQuickTipStore(db)

	c := model.Category{Name: "Cardiology", Description: "Heart"}
	require.NoError(t, categories.Create(ctx, &c))

	d := model.Device{Name: "Stethoscope", Category: "Cardiology", Description: "d", Reference: "r", LinkOfResource: "l"}
	require.NoError(t, devices.Create(ctx, &d))

	_, err := tips.AddTip(ctx, c.ID, model.Tip{Title: "t", Content: "c", Icon: "lightbulb", Priority: 1, IsActive: true})
	require.NoError(t, err)

	deleted, err := categories.Delete(ctx, c.ID, "General")
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", deleted.Name)

	got, err := devices.ByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "General", got.Category)

	_, err = tips.ByCategory(ctx, c.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = categories.Delete(ctx, c.ID, "General")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCategoryStoreRenameCascades(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	categories := store.NewCategoryStore(db)
	devices := store.NewDeviceStore(db)

	c := model.Category{Name: "Cardio", Description: "Heart"}
	require.NoError(t, categories.Create(ctx, &c))

	d := model.Device{Name: "ECG", Category: "Cardio", Description: "d", Reference: "r", LinkOfResource: "l"}
	require.NoError(t, devices.Create(ctx, &d))

	updated, err := categories.Update(ctx, c.ID, model.CategoryPatch{Name: ptr("Cardiology")})
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", updated.Name)
	assert.Equal(t, "Heart", updated.Description)

	moved, err := devices.ByCategory(ctx, "Cardiology")
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, d.ID, moved[0].ID)

	left, err := devices.ByCategory(ctx, "Cardio")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestQuickTipStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	tips := store.NewQuickTipStore(testdb.New(t))

	qt, err := tips.ReplaceTips(ctx, "cat-1", []model.Tip{
		{Title: "first", Content: "c", Icon: "lightbulb", Priority: 1, IsActive: true},
		{Title: "second", Content: "c", Icon: "lightbulb", Priority: 3, IsActive: true},
	})
	require.NoError(t, err)
	require.Len(t, qt.Tips, 2)
	assert.Equal(t, "first", qt.Tips[0].Title)

	qt, err = tips.AddTip(ctx, "cat-1", model.Tip{Title: "third", Content: "c", Icon: "heart", Priority: 2, IsActive: true})
	require.NoError(t, err)
	require.Len(t, qt.Tips, 3)
	assert.Equal(t, "third", qt.Tips[2].Title)

	qt, err = tips.UpdateTip(ctx, "cat-1", qt.Tips[0].ID, model.TipPatch{IsActive: ptr(false), Title: ptr("renamed")})
	require.NoError(t, err)
	assert.False(t, qt.Tips[0].IsActive)
	assert.Equal(t, "renamed", qt.Tips[0].Title)

	_, err = tips.UpdateTip(ctx, "cat-1", "nope", model.TipPatch{Title: ptr("x")})
	assert.ErrorIs(t, err, store.ErrTipNotFound)

	qt, err = tips.DeleteTip(ctx, "cat-1", qt.Tips[1].ID)
	require.NoError(t, err)
	assert.Len(t, qt.Tips, 2)

	_, err = tips.DeleteTip(ctx, "cat-2", "whatever")
	assert.ErrorIs(t, err, store.ErrNotFound)

	qt, err = tips.ReplaceTips(ctx, "cat-1", []model.Tip{{Title: "only", Content: "c", Icon: "x", Priority: 5, IsActive: true}})
	require.NoError(t, err)
	require.Len(t, qt.Tips, 1)
	assert.Equal(t, "only", qt.Tips[0].Title)
}

func TestNoteStoreScopedDeleteAll(t *testing.T) {
	ctx := context.Background()
	notes := store.NewNoteStore(testdb.New(t))

	require.NoError(t, notes.Create(ctx, &model.Note{UserID: "u1", Text: "a"}))
	require.NoError(t, notes.Create(ctx, &model.Note{UserID: "u1", Text: "b"}))
	require.NoError(t, notes.Create(ctx, &model.Note{UserID: "u2", Text: "c"}))

	n, err := notes.DeleteAll(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := notes.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "u2", left[0].UserID)

	_, err = notes.UpdateText(ctx, "missing", "x")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
