package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storytime-app/backend/internal/models"
)

const viewerContextKey = "viewer"

// AnonSessionHeader carries the client's anonymous session id when no bearer
// token is present.
const AnonSessionHeader = "X-Anon-Session"

// IdentityMiddleware resolves the viewer identity for every request: a valid
// bearer JWT yields an authenticated identity, anything else falls back to
// the anonymous session header or a freshly minted session id. It never
// rejects a request — feeds work for signed-out readers too.
func IdentityMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, ok := userIDFromBearer(c.Request().Header.Get("Authorization"), jwtSecret); ok {
				c.Set(viewerContextKey, models.AuthenticatedIdentity(userID))
				return next(c)
			}

			sessionID := strings.TrimSpace(c.Request().Header.Get(AnonSessionHeader))
			if sessionID == "" {
				sessionID = "anon_" + uuid.NewString()
			}
			c.Set(viewerContextKey, models.AnonymousIdentity(sessionID))
			return next(c)
		}
	}
}

// ViewerFromContext returns the identity stored by IdentityMiddleware.
func ViewerFromContext(c echo.Context) models.Identity {
	if viewer, ok := c.Get(viewerContextKey).(models.Identity); ok {
		return viewer
	}
	return models.Identity{}
}

func userIDFromBearer(authHeader, jwtSecret string) (string, bool) {
	// No signing key configured means no token can be trusted.
	if jwtSecret == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
