package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/user-profile-service/internal/utils" // session token verification
)

// UserIDKey is the Echo context key under which JWTAuth stores the
// authenticated subject's user ID (uint64).
const UserIDKey = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and injects the token's subject into the request context.  The provided
// secret must match the one used when issuing tokens.  This middleware
// wraps every route that mutates or discloses private state; it runs
// before any handler logic and rejects the request outright when the
// token is missing, malformed, expired or carries a bad signature.  All
// rejection paths answer 401 so callers cannot probe which check failed.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Read the Authorization header.  A valid header starts with
            // "Bearer " followed by the JWT.  If it doesn't, respond with
            // 401 Unauthorized before touching any business logic.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Verify signature and expiry; extract the subject user ID.
            uid, err := utils.VerifySessionToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
            }

            // Store the subject in the context.  Handlers use this ID as
            // the sole selector for every mutation; ids arriving in
            // request bodies are never trusted.
            c.Set(UserIDKey, uid)
            return next(c)
        }
    }
}

// SubjectID extracts the authenticated user ID placed in the context by
// JWTAuth.  The boolean is false when the middleware did not run or the
// stored value has an unexpected type.
func SubjectID(c echo.Context) (uint64, bool) {
    uid, ok := c.Get(UserIDKey).(uint64)
    return uid, ok
}
