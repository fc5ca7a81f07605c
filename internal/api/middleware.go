package api

import (
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/service"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Constants for context keys
const (
	ContextUserIDKey    = "userID"
	ContextIsAdminKey   = "isAdmin"
	ContextRequestIDKey = "requestID"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &service.JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}
		if !token.Valid || claims.UserID == 0 {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextIsAdminKey, claims.IsAdmin)
		c.Next()
	}
}

// AdminMiddleware rejects non-admin users. Must run AFTER
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(ContextIsAdminKey)
		if !exists {
			abortWithError(c, http.StatusInternalServerError, "User flags not found in context")
			return
		}
		if admin, ok := isAdmin.(bool); !ok || !admin {
			abortWithError(c, http.StatusForbidden, "Administrator access required")
			return
		}
		c.Next()
	}
}

// RequestIDMiddleware tags every request with an id, echoed in the
// X-Request-ID response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestLogger logs one line per request with latency and status.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"request_id", c.GetString(ContextRequestIDKey),
		)
	}
}

// getUserIDFromContext returns the authenticated user's id set by
// AuthMiddleware.
func getUserIDFromContext(c *gin.Context) (uint, error) {
	raw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := raw.(uint)
	if !ok || userID == 0 {
		return 0, errors.New("invalid user ID in context")
	}
	return userID, nil
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{
		"error":   true,
		"message": message,
	})
}

// respondServiceError translates service errors to HTTP statuses.
// Anything unrecognised is a 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	var notRecord *service.NotARecordError
	switch {
	case errors.As(err, &notRecord):
		abortWithError(c, http.StatusBadRequest, notRecord.Error())
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrPasswordMismatch):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrPlanIsTemplate):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrExerciseInUse),
		errors.Is(err, service.ErrCategoryInUse):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrRecordNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An internal error occurred")
	}
}
