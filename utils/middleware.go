package utils

import (
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// UserIDFromTokenMiddleware extracts the member ID from the JWT and stores
// it in the request context.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// AdminOnlyMiddleware ensures the requester holds any back-office role and
// exposes the admin scope to downstream handlers.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if !models.ValidAdminRole(claims.Role) {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "admin access required"})
		return
	}
	ctx.Values().Set("adminID", claims.ID)
	ctx.Values().Set("adminRole", claims.Role)
	ctx.Values().Set("adminTargetID", claims.TargetID)
	ctx.Next()
}

// SuperAdminOnlyMiddleware ensures only super admins can access.
func SuperAdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != models.RoleSuper {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "super admin access required"})
		return
	}
	ctx.Next()
}

// ScopeFromContext reads the admin scope set by AdminOnlyMiddleware.
func ScopeFromContext(ctx iris.Context) AdminScope {
	role, _ := ctx.Values().Get("adminRole").(string)
	targetID, _ := ctx.Values().Get("adminTargetID").(uint)
	return AdminScope{Role: role, TargetID: targetID}
}
