package service

import (
	"errors"
	"time"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/beka-birhanu/micromouse-api/service/i"
	"github.com/google/uuid"
)

// ErrInvalidCredentials hides whether the username or the password was
// wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

const sessionTTL = 24 * time.Hour

// Auth implements registration and sign-in over a user repository and a
// token issuer.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
}

// NewAuthService creates an Auth backed by the given repository and
// tokenizer.
func NewAuthService(userRepo i.UserRepo, tokenizer i.Tokenizer) (i.Authenticator, error) {
	if userRepo == nil {
		return nil, errors.New("auth service needs a user repository")
	}
	if tokenizer == nil {
		return nil, errors.New("auth service needs a tokenizer")
	}

	return &Auth{
		userRepo:  userRepo,
		tokenizer: tokenizer,
	}, nil
}

// Register validates the credentials and stores a new user.
func (a *Auth) Register(username, password string) error {
	userConfig := dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	user, err := dmn.NewUser(userConfig)
	if err != nil {
		return err
	}

	return a.userRepo.Save(user)
}

// SignIn verifies the credentials and returns the user with a session
// token.
func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, sessionTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
