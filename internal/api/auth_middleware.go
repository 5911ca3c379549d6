package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stefank0/djangomon/internal/constants"
)

// AdminRequired guards mutating endpoints with a static bearer token. An
// empty token rejects every request.
func AdminRequired(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: constants.ErrAdminTokenNotConfigured})
			return
		}
		header := c.GetHeader(constants.HeaderAuthorization)
		got, ok := strings.CutPrefix(header, constants.BearerPrefix)
		if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		c.Next()
	}
}
