package auth

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

func TestValidateTokenExpiry(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		claims  jwt.MapClaims
		skew    time.Duration
		wantErr bool
	}{
		{"valid future exp", jwt.MapClaims{"exp": float64(now.Add(time.Hour).Unix())}, 0, false},
		{"expired", jwt.MapClaims{"exp": float64(now.Add(-time.Hour).Unix())}, 0, true},
		{"expired within skew", jwt.MapClaims{"exp": float64(now.Add(-10 * time.Second).Unix())}, 30 * time.Second, false},
		{"expired beyond skew", jwt.MapClaims{"exp": float64(now.Add(-time.Minute).Unix())}, 30 * time.Second, true},
		{"string exp", jwt.MapClaims{"exp": "9999999999"}, 0, false},
		{"bad string exp", jwt.MapClaims{"exp": "not-a-number"}, 0, true},
		{"missing exp", jwt.MapClaims{}, 0, true},
		{"wrong type", jwt.MapClaims{"exp": []string{"x"}}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTokenExpiry(tt.claims, tt.skew)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateTokenExpiry() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtractUserID(t *testing.T) {
	id := uuid.New()

	t.Run("string id", func(t *testing.T) {
		got, err := extractUserID(jwt.MapClaims{"id": id.String()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != id {
			t.Errorf("id = %s, want %s", got, id)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if _, err := extractUserID(jwt.MapClaims{}); err == nil {
			t.Fatal("expected error for missing id")
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		if _, err := extractUserID(jwt.MapClaims{"id": "not-a-uuid"}); err == nil {
			t.Fatal("expected error for malformed id")
		}
	})
}

func TestParseInt64(t *testing.T) {
	if n, err := parseInt64("12345"); err != nil || n != 12345 {
		t.Errorf("parseInt64(12345) = %d, %v", n, err)
	}
	if _, err := parseInt64("12a45"); err == nil {
		t.Error("expected error for non-numeric input")
	}
	if _, err := parseInt64(""); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestExtractBearerToken(t *testing.T) {
	app := fiber.New()

	tests := []struct {
		name    string
		header  string
		cookie  string
		want    string
		wantErr bool
	}{
		{"header token", "Bearer abc123", "", "abc123", false},
		{"case-insensitive scheme", "bearer abc123", "", "abc123", false},
		{"quoted token", `Bearer "abc123"`, "", "abc123", false},
		{"double space tolerated", "Bearer  abc123", "", "abc123", false},
		{"cookie fallback", "", "cookie-token", "cookie-token", false},
		{"header wins over cookie", "Bearer from-header", "from-cookie", "from-header", false},
		{"no token", "", "", "", true},
		{"wrong scheme", "Basic abc123", "", "", true},
		{"scheme only", "Bearer", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fctx := &fasthttp.RequestCtx{}
			if tt.header != "" {
				fctx.Request.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				fctx.Request.Header.SetCookie("access_token", tt.cookie)
			}
			c := app.AcquireCtx(fctx)
			defer app.ReleaseCtx(c)

			got, err := extractBearerToken(c)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractBearerToken() err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
