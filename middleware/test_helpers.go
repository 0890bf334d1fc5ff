package middleware

import "context"

// SetRequestIDForTest injects a request ID into the context, bypassing
// the HTTP middleware.
func SetRequestIDForTest(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}

// SetIdentityForTest injects a verified identity and bearer token into
// the context, bypassing JWT verification.
func SetIdentityForTest(ctx context.Context, id Identity, bearer string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyIdentity{}, id)
	return context.WithValue(ctx, ctxKeyBearerToken{}, bearer)
}
