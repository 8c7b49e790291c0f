// Package identity carries the acting principal of a request through a context.
package identity

import "context"

type Identity struct {
	Username string
}

// SYSTEM acts for work the service starts on its own, e.g. scheduled resumes.
var SYSTEM = Identity{Username: "system"}

type ctxKey struct{}

func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext reports whether ctx carries an identity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Name returns the username of an optional identity, empty when absent.
func Name(id Identity, ok bool) string {
	if !ok {
		return ""
	}
	return id.Username
}
