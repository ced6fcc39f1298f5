package utils

import (
	"encoding/json"
	"net"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"

	"github.com/kataras/iris/v12"
)

// Audit records a back-office mutation with before/after snapshots. Best
// effort: a failed audit write never fails the request.
func Audit(ctx iris.Context, action, resourceType string, resourceID uint, before interface{}, after interface{}) {
	if storage.DB == nil {
		return
	}
	var beforeStr, afterStr string
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			beforeStr = string(b)
		}
	}
	if after != nil {
		if a, err := json.Marshal(after); err == nil {
			afterStr = string(a)
		}
	}

	ip := ctx.RemoteAddr()
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}

	adminID, _ := ctx.Values().Get("adminID").(uint)
	adminRole, _ := ctx.Values().Get("adminRole").(string)

	storage.DB.Create(&models.AuditLog{
		AdminID:      adminID,
		AdminRole:    adminRole,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		BeforeJSON:   beforeStr,
		AfterJSON:    afterStr,
		IPAddress:    ip,
	})
}
