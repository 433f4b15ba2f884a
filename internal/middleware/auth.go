package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/visaops/evisa_backend/internal/core/domain"
)

// actorClaims are the token claims the identity collaborator mints. The
// engine trusts the descriptor as given once the signature checks out.
type actorClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// issued by the identity collaborator and places the resulting actor
// descriptor in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.ParseWithClaims(tokenString, &actorClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*actorClaims)
		if !ok || !token.Valid || claims.Subject == "" {
			logger.Error("Actor ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		actor := domain.Actor{ActorID: claims.Subject, Role: domain.RoleApplicant}
		if strings.EqualFold(claims.Role, string(domain.RoleAdmin)) {
			actor.Role = domain.RoleAdmin
		}

		ctxWithActor := context.WithValue(c.Request.Context(), actorKey, actor)

		// Enrich the request logger with the actor identity
		enrichedLogger := logger.With(
			slog.String("actor_id", actor.ActorID),
			slog.String("actor_role", string(actor.Role)),
		)
		ctxWithLoggerAndActor := context.WithValue(ctxWithActor, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithLoggerAndActor)
		c.Next()
	}
}
