package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const accessTokenParam = "accessToken"

// accessToken reads the caller's token from the Authorization header,
// falling back to the accessToken query or form parameter.
func accessToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if token := c.Query(accessTokenParam); token != "" {
		return token
	}
	return c.PostForm(accessTokenParam)
}
