package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when no verifier accepts a token.
var ErrInvalidToken = errors.New("invalid token")

// Verifier resolves a bearer token to the subject it authenticates.
type Verifier interface {
	Verify(ctx context.Context, token string) (subject string, err error)
}

// Chain tries each verifier in order and returns the first accepted subject.
type Chain []Verifier

// Verify implements Verifier.
func (c Chain) Verify(ctx context.Context, token string) (string, error) {
	errs := make([]error, 0, len(c))
	for _, v := range c {
		subject, err := v.Verify(ctx, token)
		if err == nil {
			return subject, nil
		}
		errs = append(errs, err)
	}
	return "", errors.Join(append([]error{ErrInvalidToken}, errs...)...)
}
