package auth

import (
	"testing"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/pkg/config"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "vendorhub",
		ExpirationMinutes: 5,
	}
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	vendorID := uuid.New()
	raw, err := IssueAccessToken(cfg, AccessClaims{
		UserID:   uuid.New(),
		VendorID: &vendorID,
		Role:     enums.MemberRoleVendor,
	})
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	claims, err := ParseAccessToken(cfg, raw)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if claims.Role != enums.MemberRoleVendor {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
	if claims.VendorID == nil || *claims.VendorID != vendorID {
		t.Fatalf("vendor id mismatch: %v", claims.VendorID)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	raw, err := IssueAccessToken(cfg, AccessClaims{UserID: uuid.New(), Role: enums.MemberRoleDistributor})
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, raw); err == nil {
		t.Fatal("expected signature verification failure")
	}
}

func TestParseRejectsUnknownRole(t *testing.T) {
	cfg := testJWTConfig()
	raw, err := IssueAccessToken(cfg, AccessClaims{UserID: uuid.New(), Role: enums.MemberRole("intern")})
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}
	if _, err := ParseAccessToken(cfg, raw); err == nil {
		t.Fatal("expected unknown role rejection")
	}
}
