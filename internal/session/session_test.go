package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/models"
)

var (
	student = models.User{ID: "user-1", Name: "Scholar Student", Email: "student@college.edu", Role: models.RoleStudent}
	admin   = models.User{ID: "admin-1", Name: "Admin Controller", Email: "admin@college.edu", Role: models.RoleAdmin}
)

func TestContextLifecycle(t *testing.T) {
	c := New()
	assert.Nil(t, c.User())

	c.Login(student)
	require.NotNil(t, c.User())
	assert.Equal(t, "user-1", c.User().ID)

	c.Login(admin)
	assert.Equal(t, "admin-1", c.User().ID)

	c.Logout()
	assert.Nil(t, c.User())
}

func TestUserReturnsCopy(t *testing.T) {
	c := For(student)
	c.User().Role = models.RoleAdmin

	_, err := c.RequireAdmin()
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestGuards(t *testing.T) {
	tests := []struct {
		name     string
		ctx      *Context
		userErr  *apperrors.Error
		adminErr *apperrors.Error
	}{
		{"anonymous", New(), apperrors.ErrUnauthorized, apperrors.ErrUnauthorized},
		{"nil context", nil, apperrors.ErrUnauthorized, apperrors.ErrUnauthorized},
		{"student", For(student), nil, apperrors.ErrForbidden},
		{"admin", For(admin), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.ctx.RequireUser()
			if tt.userErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.userErr)
			}

			_, err = tt.ctx.RequireAdmin()
			if tt.adminErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.adminErr)
			}
		})
	}
}

func TestCodecRoundTrip(t *testing.T) {
	avatar := "https://cdn.example/avatar.png"
	users := []models.User{
		student,
		admin,
		{ID: "u-3", Name: "", Email: "", Role: models.RoleStudent, Avatar: &avatar},
	}

	for _, u := range users {
		blob, err := Encode(u)
		require.NoError(t, err)

		decoded, err := Decode(blob)
		require.NoError(t, err)
		assert.Equal(t, u, decoded)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	for _, blob := range []string{`not json`, `{"id":"","role":"student"}`, `{"id":"x","role":"root"}`} {
		_, err := Decode([]byte(blob))
		assert.Error(t, err, blob)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "sid", []byte("blob"), time.Minute))

	blob, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), blob)

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, "sid")
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(ctx, "sid", []byte("blob"), time.Minute))
	require.NoError(t, store.Delete(ctx, "sid"))
	_, err = store.Load(ctx, "sid")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreSweepsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, store.Save(ctx, "long", []byte("b"), time.Hour))

	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Save(ctx, "fresh", []byte("c"), time.Hour))

	assert.Len(t, store.entries, 2)
	assert.NotContains(t, store.entries, "short")
}
