package httpx

import (
	"jobboard-service/internal/authz"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key the auth middleware stores the
// resolved principal under.
const PrincipalKey = "principal"

// Principal returns the authenticated principal, or nil for anonymous
// requests on optional-auth routes.
func Principal(c *gin.Context) *authz.Principal {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*authz.Principal)
	return p
}
