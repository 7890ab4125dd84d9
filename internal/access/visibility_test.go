package access

import (
	"testing"

	"resource-portal/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveVisibilityPublicResourceVisibleToAnyone(t *testing.T) {
	res := &models.Resource{ID: "r1", CreatedBy: "owner", IsPublic: true}

	for _, viewer := range []string{"owner", "stranger", "member"} {
		verdict := ResolveVisibility(viewer, res, nil, nil, nil)
		assert.True(t, verdict.Visible, "viewer %s", viewer)
	}
}

func TestResolveVisibilityRuleOrder(t *testing.T) {
	res := &models.Resource{ID: "r1", CreatedBy: "owner", IsPublic: false}
	directShares := []models.Share{
		{ResourceID: "r1", UserID: "direct-user"},
	}
	groupShares := []models.GroupShare{
		{ResourceID: "r1", GroupID: "g1"},
	}

	tests := []struct {
		name         string
		viewerID     string
		viewerGroups []string
		wantVisible  bool
		wantClass    Classification
	}{
		{"owner wins", "owner", nil, true, ClassificationOwned},
		{"direct share", "direct-user", nil, true, ClassificationSharedDirect},
		{"group share", "group-user", []string{"g1"}, true, ClassificationSharedGroup},
		{"direct beats group", "direct-user", []string{"g1"}, true, ClassificationSharedDirect},
		{"no access", "stranger", []string{"g2"}, false, ClassificationNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := ResolveVisibility(tt.viewerID, res, directShares, groupShares, tt.viewerGroups)
			assert.Equal(t, tt.wantVisible, verdict.Visible)
			assert.Equal(t, tt.wantClass, verdict.Classification)
		})
	}
}

func TestOwnerWithStaleShareRowStillClassifiedOwned(t *testing.T) {
	res := &models.Resource{ID: "r1", CreatedBy: "owner", IsPublic: false}
	staleShares := []models.Share{
		{ResourceID: "r1", UserID: "owner"},
	}

	verdict := ResolveVisibility("owner", res, staleShares, nil, nil)
	assert.True(t, verdict.Visible)
	assert.Equal(t, ClassificationOwned, verdict.Classification)
	assert.False(t, SharedWithMe("owner", res, verdict))
}

func TestSharedWithMeFlag(t *testing.T) {
	res := &models.Resource{ID: "r1", CreatedBy: "owner", IsPublic: false}
	shares := []models.Share{{ResourceID: "r1", UserID: "viewer"}}

	verdict := ResolveVisibility("viewer", res, shares, nil, nil)
	assert.True(t, SharedWithMe("viewer", res, verdict))

	public := &models.Resource{ID: "r2", CreatedBy: "owner", IsPublic: true}
	publicVerdict := ResolveVisibility("viewer", public, nil, nil, nil)
	assert.False(t, SharedWithMe("viewer", public, publicVerdict))
}

func TestGroupShareForOtherResourceDoesNotLeak(t *testing.T) {
	res := &models.Resource{ID: "r1", CreatedBy: "owner", IsPublic: false}
	groupShares := []models.GroupShare{
		{ResourceID: "other-resource", GroupID: "g1"},
	}

	verdict := ResolveVisibility("viewer", res, nil, groupShares, []string{"g1"})
	assert.False(t, verdict.Visible)
}
