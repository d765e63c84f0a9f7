// FILE: internal/entity/session_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type AuthStatus int

const (
	AuthUnauthenticated AuthStatus = iota
	AuthFailed
	AuthSucceeded
)

func (s AuthStatus) String() string {
	switch s {
	case AuthFailed:
		return "failed"
	case AuthSucceeded:
		return "succeeded"
	default:
		return "unauthenticated"
	}
}

// Session is an authenticated login carried in the signed cookie.
type Session struct {
	Id        uuid.UUID
	Username  string
	Name      string
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AuthState is the outcome of authenticating a request. Session is only set
// when Status is AuthSucceeded; use the constructors below.
type AuthState struct {
	status  AuthStatus
	session *Session
}

func Unauthenticated() AuthState {
	return AuthState{status: AuthUnauthenticated}
}

func LoginFailed() AuthState {
	return AuthState{status: AuthFailed}
}

func Authenticated(s *Session) AuthState {
	if s == nil {
		return Unauthenticated()
	}
	return AuthState{status: AuthSucceeded, session: s}
}

func (a AuthState) Status() AuthStatus {
	return a.status
}

func (a AuthState) Succeeded() bool {
	return a.status == AuthSucceeded
}

// Session returns the authenticated session, or nil.
func (a AuthState) Session() *Session {
	return a.session
}
