package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/tokens"
)

const CtxIdentity = "identity"

const (
	MsgNoHeader     = "Unauthorized: No authorization header provided"
	MsgBadFormat    = "Unauthorized: Invalid authorization header format"
	MsgInvalidToken = "Unauthorized: Invalid token"
)

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	UserID uint
}

type Verifier interface {
	Verify(token string) (*tokens.AccessClaims, error)
}

type BearerAuth struct {
	Tokens Verifier
}

func NewBearerAuth(v Verifier) *BearerAuth {
	return &BearerAuth{Tokens: v}
}

func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "bearer_auth")

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			l.Warn("auth_rejected", "status", 401, "reason", "no header")
			return echo.NewHTTPError(http.StatusUnauthorized, MsgNoHeader)
		}

		raw, ok := parseBearer(header)
		if !ok {
			l.Warn("auth_rejected", "status", 401, "reason", "bad format")
			return echo.NewHTTPError(http.StatusUnauthorized, MsgBadFormat)
		}

		claims, err := m.Tokens.Verify(raw)
		if err != nil {
			l.Warn("auth_rejected", "status", 401, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidToken)
		}

		SetIdentity(c, Identity{UserID: claims.UserID})
		return next(c)
	}
}

// parseBearer accepts exactly "Bearer <token>".
func parseBearer(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func SetIdentity(c echo.Context, id Identity) {
	c.Set(CtxIdentity, id)
}

func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(CtxIdentity).(Identity)
	if !ok || id.UserID == 0 {
		return Identity{}, false
	}
	return id, true
}
