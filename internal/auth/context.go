package auth

import "context"

type ctxKey struct{}

// WithSubject returns a copy of ctx carrying the authenticated subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ctxKey{}, subject)
}

// SubjectFrom returns the authenticated subject carried by ctx.
// ok is false when the request is anonymous.
func SubjectFrom(ctx context.Context) (subject string, ok bool) {
	subject, ok = ctx.Value(ctxKey{}).(string)
	return subject, ok && subject != ""
}
