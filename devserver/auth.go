package devserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carlsburger/gastrocore/security"
)

// authentication guards the API group. It accepts a bearer token signed
// with the configured secret and stores the staff identity on the context.
func authentication(base64Secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			c.Abort()
			return
		}

		claims, err := security.ParseStaffToken(tokenString, base64Secret)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("staff", claims.Staff)
		c.Next()
	}
}

// currentStaff returns the identity set by the authentication middleware.
func currentStaff(c *gin.Context) security.Staff {
	v, _ := c.Get("staff")
	staff, _ := v.(security.Staff)
	return staff
}

// staffID is the caller's id in the string form the wire DTOs use.
func staffID(c *gin.Context) string {
	return strconv.Itoa(currentStaff(c).ID)
}

// requireManager rejects callers without the manager role.
func requireManager(c *gin.Context) bool {
	if currentStaff(c).Role != security.RoleManager {
		respondError(c, http.StatusForbidden, "forbidden", "manager role required")
		c.Abort()
		return false
	}
	return true
}
