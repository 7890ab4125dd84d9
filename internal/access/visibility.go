// Package access holds the visibility resolver and the share fan-out
// engine: the rules deciding who can see a resource and how a share
// request expands into individual grants.
package access

import (
	"resource-portal/internal/models"
)

// Classification is the reason a resource is visible to a viewer.
type Classification string

const (
	ClassificationOwned        Classification = "owned"
	ClassificationPublic       Classification = "public"
	ClassificationSharedDirect Classification = "shared_direct"
	ClassificationSharedGroup  Classification = "shared_via_group"
	ClassificationNone         Classification = ""
)

// Verdict is the outcome of one visibility resolution.
type Verdict struct {
	Visible        bool
	Classification Classification
}

// ResolveVisibility decides whether the viewer can see the resource, first
// match wins: owner, public, direct share, group share. Share state is
// whatever the caller just read; nothing is cached between resolutions.
func ResolveVisibility(viewerID string, res *models.Resource, directShares []models.Share, groupShares []models.GroupShare, viewerGroupIDs []string) Verdict {
	if res.CreatedBy == viewerID {
		return Verdict{Visible: true, Classification: ClassificationOwned}
	}
	if res.IsPublic {
		return Verdict{Visible: true, Classification: ClassificationPublic}
	}
	for _, share := range directShares {
		if share.ResourceID == res.ID && share.UserID == viewerID {
			return Verdict{Visible: true, Classification: ClassificationSharedDirect}
		}
	}
	if len(viewerGroupIDs) > 0 {
		memberOf := make(map[string]struct{}, len(viewerGroupIDs))
		for _, id := range viewerGroupIDs {
			memberOf[id] = struct{}{}
		}
		for _, gs := range groupShares {
			if gs.ResourceID != res.ID {
				continue
			}
			if _, ok := memberOf[gs.GroupID]; ok {
				return Verdict{Visible: true, Classification: ClassificationSharedGroup}
			}
		}
	}
	return Verdict{Visible: false, Classification: ClassificationNone}
}

// SharedWithMe reports whether the resource reached the viewer through a
// share. It is never true for the owner, even when a stale Share row points
// at them.
func SharedWithMe(viewerID string, res *models.Resource, verdict Verdict) bool {
	if res.CreatedBy == viewerID {
		return false
	}
	return verdict.Classification == ClassificationSharedDirect ||
		verdict.Classification == ClassificationSharedGroup
}
