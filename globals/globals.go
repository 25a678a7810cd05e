package globals

import (
	"context"
	"os"
)

var (
	JwtSecret      = []byte(envOr("JWT_SECRET", "change_me_in_prod"))
	CertHmacSecret = []byte(envOr("CERT_HMAC_SECRET", "change_me_in_prod"))
)

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
