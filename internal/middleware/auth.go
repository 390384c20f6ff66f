package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"genai-space-backend/internal/config"
	"genai-space-backend/internal/models"
)

const (
	UserIDKey    = "user_id"
	UserNameKey  = "user_name"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"

	RoleAdmin = "admin"
)

func abort(c *gin.Context, status int, err, msg string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: err, Message: msg})
}

// bearerToken returns the token from the Authorization header. Event streams
// opened by a browser cannot set headers, so GET requests may pass the token
// as the access_token query parameter instead.
func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if c.Request.Method == http.MethodGet {
			if token := c.Query("access_token"); token != "" {
				return token, ""
			}
		}
		return "", "missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "invalid authorization header format"
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", "empty token"
	}

	// Try URL decoding in case the token was URL-encoded
	if decoded, err := url.QueryUnescape(tokenString); err == nil {
		tokenString = decoded
	}
	return tokenString, ""
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, problem := bearerToken(c)
		if problem != "" {
			abort(c, http.StatusUnauthorized, problem, "")
			return
		}

		// Supabase signs access tokens with HS256 and the project JWT secret.
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			if cfg.SupabaseJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			var msg string
			switch {
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				msg = "token signature is invalid - check JWT secret"
			case errors.Is(err, jwt.ErrTokenExpired):
				msg = "token has expired"
			case errors.Is(err, jwt.ErrTokenMalformed):
				msg = "token is malformed - ensure you're using a valid Supabase JWT token"
			default:
				msg = err.Error()
			}
			abort(c, http.StatusUnauthorized, "invalid token", msg)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			abort(c, http.StatusUnauthorized, "invalid token claims", "")
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			abort(c, http.StatusUnauthorized, "missing user id in token", "")
			return
		}

		email, _ := claims["email"].(string)
		c.Set(UserIDKey, sub)
		c.Set(UserEmailKey, email)
		c.Set(UserNameKey, displayName(claims, email))
		c.Set(UserRoleKey, nestedString(claims, "app_metadata", "role"))
		c.Next()
	}
}

// AdminOnly rejects callers whose token does not carry the admin role in
// app_metadata. It must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UserRoleKey) != RoleAdmin {
			abort(c, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		c.Next()
	}
}

func displayName(claims jwt.MapClaims, email string) string {
	for _, key := range []string{"full_name", "name"} {
		if name := nestedString(claims, "user_metadata", key); name != "" {
			return name
		}
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return "Anonymous"
}

func nestedString(claims jwt.MapClaims, object, key string) string {
	m, ok := claims[object].(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
