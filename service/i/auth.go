package i

import (
	dmn "github.com/beka-birhanu/micromouse-api/domain"
)

// Authenticator registers accounts and signs users in.
type Authenticator interface {
	// Register creates an account from a username and plain password.
	Register(string, string) error

	// SignIn verifies the credentials and returns the user together with
	// a fresh access token.
	SignIn(string, string) (*dmn.User, string, error)
}
