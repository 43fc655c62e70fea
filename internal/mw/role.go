package mw

import "github.com/gin-gonic/gin"

// RoleHeader carries the staff role resolved by the auth tier in front of
// this service. This service trusts it; authentication is not its job.
const RoleHeader = "X-Staff-Role"

const roleContextKey = "staffRole"

// Role extracts the staff role into the gin context.
func Role() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(roleContextKey, c.GetHeader(RoleHeader))
		c.Next()
	}
}

// RoleFrom returns the staff role for the request, empty when absent.
func RoleFrom(c *gin.Context) string {
	role, _ := c.Get(roleContextKey)
	s, _ := role.(string)
	return s
}
