package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTKey("round-trip-secret")

	token, err := CreateToken("+15550001234")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Phone != "+15550001234" {
		t.Errorf("claims phone = %s, want +15550001234", claims.Phone)
	}
}

func TestTokenSignedWithInstalledKeyNotEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "value-from-env")
	SetJWTKey("value-from-config")

	token, err := CreateToken("+15550001234")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	// Signature must come from the installed key, never the process env.
	_, err = jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("value-from-env"), nil
	})
	if err == nil {
		t.Fatal("token verified against the env value; key must come from config")
	}

	if _, err := ValidateToken(token); err != nil {
		t.Errorf("token failed against the installed key: %v", err)
	}
}

func TestTokenRejectedAfterKeyRotation(t *testing.T) {
	SetJWTKey("old-key")
	token, err := CreateToken("+15550001234")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	SetJWTKey("new-key")
	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed with the old key still validated")
	}
}
