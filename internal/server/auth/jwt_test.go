package auth

import (
	"errors"
	"testing"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := int64(123)

	tok, err := GenerateToken(userID, secret)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotUserID, err := GetUserIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %d want %d", gotUserID, userID)
	}
}

func TestGenerateToken_DistinctPerCall(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	a, err := GenerateToken(7, secret)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	b, err := GenerateToken(7, secret)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	// Same user, same second: the jti must still keep the tokens apart.
	if a == b {
		t.Fatalf("two tokens for the same user are identical")
	}
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(2, []byte("right-secret"))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("expected common.ErrUnauthenticated, got %v", err)
	}
}

func TestGetUserIDFromToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := GetUserIDFromToken("not-a-token", []byte("secret"))
	if !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("expected common.ErrUnauthenticated, got %v", err)
	}
}

func TestGetUserIDFromToken_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	// alg "none" must be rejected before any claim is trusted.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 9})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, []byte("secret"))
	if !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("expected common.ErrUnauthenticated, got %v", err)
	}
}

func TestUserIDContext_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithUserID(t.Context(), 42)

	got, ok := UserIDFromContext(ctx)
	if !ok || got != 42 {
		t.Fatalf("UserIDFromContext = (%d, %v), want (42, true)", got, ok)
	}

	if _, ok := UserIDFromContext(t.Context()); ok {
		t.Fatalf("bare context must not carry a user id")
	}
}
