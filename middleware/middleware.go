package middleware

import (
	"errors"
	"strings"
)

const (
	// Basic auth type prefix
	Basic = "BASIC"
)

// Middleware guard for introspection endpoints
type Middleware struct {
	username, password string
}

// NewMiddleware create new middleware instance
func NewMiddleware(username, password string) *Middleware {
	return &Middleware{username: username, password: password}
}

func extractAuthType(prefix, authorization string) (string, error) {

	authValues := strings.Split(authorization, " ")
	if len(authValues) == 2 && strings.ToUpper(authValues[0]) == prefix {
		return authValues[1], nil
	}

	return "", errors.New("Invalid authorization")
}
