package utils

import (
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
)

// AdminScope is the visibility of an authenticated back-office session.
// Non-super roles see only requests whose target matches their TargetID.
type AdminScope struct {
	Role     string // super | partner | agent | freelancer
	TargetID uint
}

// roleKinds maps an admin role to the request kind it administers.
var roleKinds = map[string]string{
	models.RolePartner:    models.RequestKindPartner,
	models.RoleAgent:      models.RequestKindAgent,
	models.RoleFreelancer: models.RequestKindContent,
}

// RequestKindForRole returns the request kind a role administers, or ""
// for super (which sees every kind).
func RequestKindForRole(role string) string {
	return roleKinds[role]
}

// VisibleRequests filters requests down to what the scope may see or act
// upon. Super sees everything; the other roles see only their own target's
// requests of the matching kind.
func VisibleRequests(requests []models.Request, scope AdminScope) []models.Request {
	if scope.Role == models.RoleSuper {
		return requests
	}
	kind, ok := roleKinds[scope.Role]
	if !ok {
		return []models.Request{}
	}
	out := make([]models.Request, 0, len(requests))
	for _, r := range requests {
		if r.Kind == kind && r.TargetID == scope.TargetID {
			out = append(out, r)
		}
	}
	return out
}

// FilterByCategory intersects requests with the owning entities whose
// category matches the route's category segment. categories maps target ID
// to category for the relevant kind.
func FilterByCategory(requests []models.Request, categories map[uint]string, category string) []models.Request {
	if category == "" {
		return requests
	}
	out := make([]models.Request, 0, len(requests))
	for _, r := range requests {
		if categories[r.TargetID] == category {
			out = append(out, r)
		}
	}
	return out
}
