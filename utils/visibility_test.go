package utils

import (
	"testing"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"

	"github.com/stretchr/testify/assert"
)

func sampleRequests() []models.Request {
	return []models.Request{
		{ID: 1, Kind: models.RequestKindPartner, TargetID: 1},
		{ID: 2, Kind: models.RequestKindPartner, TargetID: 2},
		{ID: 3, Kind: models.RequestKindAgent, TargetID: 1},
		{ID: 4, Kind: models.RequestKindContent, TargetID: 1},
	}
}

func TestSuperSeesAll(t *testing.T) {
	got := VisibleRequests(sampleRequests(), AdminScope{Role: models.RoleSuper})
	assert.Len(t, got, 4)
}

func TestPartnerSeesOnlyOwnTarget(t *testing.T) {
	got := VisibleRequests(sampleRequests(), AdminScope{Role: models.RolePartner, TargetID: 1})
	assert.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(1), got[0].TargetID)
}

func TestAgentDoesNotSeePartnerRequests(t *testing.T) {
	got := VisibleRequests(sampleRequests(), AdminScope{Role: models.RoleAgent, TargetID: 1})
	assert.Len(t, got, 1)
	assert.Equal(t, models.RequestKindAgent, got[0].Kind)
}

func TestFreelancerScopedToContentKind(t *testing.T) {
	got := VisibleRequests(sampleRequests(), AdminScope{Role: models.RoleFreelancer, TargetID: 1})
	assert.Len(t, got, 1)
	assert.Equal(t, models.RequestKindContent, got[0].Kind)
}

func TestUnknownRoleSeesNothing(t *testing.T) {
	got := VisibleRequests(sampleRequests(), AdminScope{Role: "user"})
	assert.Empty(t, got)
}

func TestFilterByCategory(t *testing.T) {
	requests := []models.Request{
		{ID: 1, Kind: models.RequestKindPartner, TargetID: 1},
		{ID: 2, Kind: models.RequestKindPartner, TargetID: 2},
	}
	categories := map[uint]string{1: "beauty", 2: "travel"}

	got := FilterByCategory(requests, categories, "beauty")
	assert.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)

	assert.Len(t, FilterByCategory(requests, categories, ""), 2, "empty category keeps everything")
}
