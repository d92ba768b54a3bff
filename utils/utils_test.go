package utils

import (
	"testing"

	"assetledger/config"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestGenerateRandomPasswordLength(t *testing.T) {
	pass := GenerateRandomPassword(12)
	if len(pass) != 12 {
		t.Fatalf("expected 12 characters, got %d", len(pass))
	}
	if pass == GenerateRandomPassword(12) {
		t.Fatal("two generated passwords should differ")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	config.LoadConfig()

	token, err := GenerateJWT("64f000000000000000000001", "Thandi M", "admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != "64f000000000000000000001" || claims.Role != "admin" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	config.LoadConfig()

	if _, err := ValidateJWT("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
