package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "dentalms/internal/pkg/jwt"
	"dentalms/internal/pkg/response"
)

// tokenExtractor pulls a raw token out of the request.
// An empty string means the channel carried no token.
type tokenExtractor func(c *gin.Context) string

func fromAuthHeader(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func fromQuery(param string) tokenExtractor {
	return func(c *gin.Context) string {
		return strings.TrimSpace(c.Query(param))
	}
}

// JWTAuth authenticates requests with a bearer token in the Authorization
// header and stores the doctor id on the context.
func JWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return authWith(jwt, fromAuthHeader)
}

// JWTAuthWithQueryToken additionally accepts the token as a query parameter.
// Browser-native embeds (<img>, <iframe>) cannot attach headers, so inline
// file views carry the token in the URL. Both channels go through the same
// validation; there is no weaker check for the query channel.
func JWTAuthWithQueryToken(jwt *jwtsvc.Service, param string) gin.HandlerFunc {
	return authWith(jwt, fromAuthHeader, fromQuery(param))
}

func authWith(jwt *jwtsvc.Service, extractors ...tokenExtractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string
		for _, extract := range extractors {
			if tokenStr = extract(c); tokenStr != "" {
				break
			}
		}

		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "No token provided")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			if errors.Is(err, jwtsvc.ErrTokenExpired) {
				response.ErrorWithReason(c, http.StatusForbidden, "FORBIDDEN",
					"Token expired. Please login again", "expired")
			} else {
				response.ErrorWithReason(c, http.StatusForbidden, "FORBIDDEN",
					"Invalid authentication token", "invalid")
			}
			c.Abort()
			return
		}

		c.Set("doctor_id", claims.DoctorID)

		c.Next()
	}
}
