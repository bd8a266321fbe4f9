package auth

import "context"

type ctxKey string

const userIDKey ctxKey = "userID"

// WithUserID returns a child context carrying the authenticated user's id.
// The authenticator middleware attaches it; handlers read it back with
// UserIDFromContext instead of re-parsing the token.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user id set by WithUserID.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
