package access

import (
	"context"

	"resource-portal/internal/models"
	"resource-portal/internal/store"

	"go.uber.org/zap"
)

// Grants is the result of expanding a share request.
type Grants struct {
	// IsPublic is true when no users and no groups were requested. It is
	// derived exactly once, at resource creation.
	IsPublic bool
	// UserIDs is the complete grant set, owner included, in insertion
	// order: owner, explicit users, then group members.
	UserIDs []string
	// GroupIDs carries one audit entry per requested group, empty groups
	// included.
	GroupIDs []string
}

// ShareService is the share fan-out engine. It expands group-level share
// requests into individual grants using the groups' membership at call
// time; the result is a snapshot, later membership changes never rewrite
// existing Share rows.
type ShareService struct {
	stores *store.Store
	logger *zap.Logger
}

func NewShareService(stores *store.Store, log *zap.Logger) *ShareService {
	return &ShareService{stores: stores, logger: log}
}

// ComputeGrants builds the grant set for a share request. The owner is
// always included so the owner's own queries resolve without relying on
// the owned rule alone. Membership lookup failures are logged and the
// affected group contributes no members; the request still succeeds.
func (s *ShareService) ComputeGrants(ctx context.Context, ownerID string, userIDs, groupIDs []string) Grants {
	grants := Grants{
		IsPublic: len(userIDs) == 0 && len(groupIDs) == 0,
		GroupIDs: append([]string(nil), groupIDs...),
	}
	if grants.IsPublic {
		grants.UserIDs = []string{ownerID}
		return grants
	}

	seen := map[string]struct{}{ownerID: {}}
	grants.UserIDs = []string{ownerID}
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		grants.UserIDs = append(grants.UserIDs, id)
	}

	for _, id := range userIDs {
		add(id)
	}

	if len(groupIDs) > 0 {
		members, err := s.stores.Groups.MembersOf(ctx, groupIDs)
		if err != nil {
			// Best effort: the resource row is already committed, so a
			// failed membership read must not abort the parent operation.
			s.logger.Error("group membership lookup failed during fan-out",
				zap.Strings("group_ids", groupIDs),
				zap.Error(err))
		}
		for _, m := range members {
			add(m.UserID)
		}
	}

	return grants
}

// ApplyGrants inserts the Share and GroupShare rows for a freshly created
// resource. Insert failures are logged and swallowed; the resource itself
// already exists.
func (s *ShareService) ApplyGrants(ctx context.Context, resourceID string, grants Grants) {
	if grants.IsPublic {
		return
	}

	groupShares := make([]models.GroupShare, 0, len(grants.GroupIDs))
	for _, gid := range grants.GroupIDs {
		groupShares = append(groupShares, models.GroupShare{ResourceID: resourceID, GroupID: gid})
	}
	if err := s.stores.Shares.InsertGroupShares(ctx, groupShares); err != nil {
		s.logger.Error("failed to record group share audit rows",
			zap.String("resource_id", resourceID),
			zap.Error(err))
	}

	shares := make([]models.Share, 0, len(grants.UserIDs))
	for _, uid := range grants.UserIDs {
		shares = append(shares, models.Share{ResourceID: resourceID, UserID: uid})
	}
	if err := s.stores.Shares.Insert(ctx, shares); err != nil {
		s.logger.Error("failed to insert resource shares",
			zap.String("resource_id", resourceID),
			zap.Int("grant_count", len(shares)),
			zap.Error(err))
	}
}

// ReplaceGrants is the edit path: delete every Share and GroupShare row for
// the resource, then re-run fan-out from the new explicit sets. The two
// phases are NOT atomic; a concurrent read between them can observe a
// resource with zero grants. is_public is not recomputed here.
func (s *ShareService) ReplaceGrants(ctx context.Context, resourceID, ownerID string, userIDs, groupIDs []string) Grants {
	if err := s.stores.Shares.DeleteForResource(ctx, resourceID); err != nil {
		s.logger.Error("failed to clear resource shares before replace",
			zap.String("resource_id", resourceID),
			zap.Error(err))
	}
	if err := s.stores.Shares.DeleteGroupSharesForResource(ctx, resourceID); err != nil {
		s.logger.Error("failed to clear group shares before replace",
			zap.String("resource_id", resourceID),
			zap.Error(err))
	}

	grants := s.ComputeGrants(ctx, ownerID, userIDs, groupIDs)
	if !grants.IsPublic {
		s.ApplyGrants(ctx, resourceID, grants)
	}
	return grants
}
