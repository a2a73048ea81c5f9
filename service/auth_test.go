package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"testing"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Strong enough to pass the registration strength check.
const strongPassword = "maze-Blazer!4711"

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*dmn.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*dmn.User)}
}

func (f *fakeUserRepo) Save(user *dmn.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserRepo) ByUsername(username string) (*dmn.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

type fakeTokenizer struct{}

func (fakeTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	return fmt.Sprintf("token-for-%v", claims["username"]), nil
}

func (fakeTokenizer) Decode(string) (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

func TestNewAuthService(t *testing.T) {
	_, err := NewAuthService(nil, fakeTokenizer{})
	assert.Error(t, err)

	_, err = NewAuthService(newFakeUserRepo(), nil)
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	auth, err := NewAuthService(repo, fakeTokenizer{})
	require.NoError(t, err)

	t.Run("Rejects weak passwords", func(t *testing.T) {
		err := auth.Register("speedrunner", "password")
		assert.ErrorIs(t, err, dmn.ErrWeakPassword)
		assert.Empty(t, repo.users)
	})

	t.Run("Rejects malformed usernames", func(t *testing.T) {
		err := auth.Register("no spaces here", strongPassword)
		assert.ErrorIs(t, err, dmn.ErrUsernameFormat)
	})

	t.Run("Stores the user with a hashed password", func(t *testing.T) {
		require.NoError(t, auth.Register("speedrunner", strongPassword))

		user, err := repo.ByUsername("speedrunner")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.NotContains(t, user.PasswordHash, strongPassword)
		assert.True(t, user.VerifyPassword(strongPassword))
	})
}

func TestSignIn(t *testing.T) {
	repo := newFakeUserRepo()
	auth, err := NewAuthService(repo, fakeTokenizer{})
	require.NoError(t, err)
	require.NoError(t, auth.Register("wallhugger", strongPassword))

	t.Run("Unknown username", func(t *testing.T) {
		_, _, err := auth.SignIn("nobody", strongPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := auth.SignIn("wallhugger", "maze-Blazer!0000")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Returns the user and a token", func(t *testing.T) {
		user, token, err := auth.SignIn("wallhugger", strongPassword)
		require.NoError(t, err)
		assert.Equal(t, "wallhugger", user.Username)
		assert.Equal(t, "token-for-wallhugger", token)
	})
}
