package modapi

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ActorFromToken names the operator behind a bearer token for display and
// auditing. The moderation service issues and verifies the token; the console
// only reads its claims.
func ActorFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "operator"
	}
	for _, key := range []string{"username", "email", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	if v, ok := claims["id"].(float64); ok {
		return "operator#" + strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "operator"
}
