package handlers

import (
	"net/http"

	"resource-portal/internal/api/middleware"
	"resource-portal/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type groupMemberView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

type groupView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CreatedAt   string            `json:"created_at"`
	MemberCount int               `json:"member_count"`
	Members     []groupMemberView `json:"members"`
}

// ListGroups returns every workgroup with its members resolved to
// profiles. Missing profiles degrade to the bare user id.
func ListGroups(c *gin.Context) {
	ctx := c.Request.Context()

	groups, err := stores.Groups.ListWorkgroups(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load groups"})
		return
	}
	if len(groups) == 0 {
		c.JSON(http.StatusOK, gin.H{"groups": []groupView{}})
		return
	}

	groupIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}
	members, err := stores.Groups.MembersOf(ctx, groupIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load group members"})
		return
	}

	membersByGroup := make(map[string][]groupMemberView)
	for _, m := range members {
		view := groupMemberView{ID: m.UserID, Email: "Usuario desconocido"}
		if user, err := stores.Users.ByID(ctx, m.UserID); err == nil {
			view.Email = user.Email
			view.FullName = user.FullName
			view.AvatarURL = user.AvatarURL
		}
		membersByGroup[m.GroupID] = append(membersByGroup[m.GroupID], view)
	}

	result := make([]groupView, 0, len(groups))
	for _, g := range groups {
		ms := membersByGroup[g.ID]
		if ms == nil {
			ms = []groupMemberView{}
		}
		result = append(result, groupView{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			CreatedAt:   g.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			MemberCount: len(ms),
			Members:     ms,
		})
	}

	c.JSON(http.StatusOK, gin.H{"groups": result})
}

// CreateGroup creates a workgroup. The creator always joins; member
// inserts are best effort since the group row is already committed.
func CreateGroup(c *gin.Context) {
	viewerID := middleware.ViewerID(c)
	ctx := c.Request.Context()

	var input struct {
		Name         string   `json:"name" binding:"required,min=1,max=150"`
		Description  string   `json:"description"`
		MemberEmails []string `json:"member_emails"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name is required"})
		return
	}

	group := models.Group{
		Name:        input.Name,
		Description: input.Description,
		Type:        models.GroupTypeWorkgroup,
		CreatedBy:   viewerID,
	}
	if err := stores.Groups.Create(ctx, &group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	memberIDs := resolveMemberSet(c, viewerID, input.MemberEmails)
	memberships := make([]models.GroupMembership, 0, len(memberIDs))
	for _, uid := range memberIDs {
		memberships = append(memberships, models.GroupMembership{GroupID: group.ID, UserID: uid})
	}
	if err := stores.Groups.InsertMembers(ctx, memberships); err != nil {
		log.Error("group member insert failed",
			zap.String("group_id", group.ID),
			zap.Error(err))
	}

	c.JSON(http.StatusCreated, group)
}

// UpdateGroup edits a group and replaces its full membership set. The
// acting user is always re-added so they cannot lock themselves out.
func UpdateGroup(c *gin.Context) {
	viewerID := middleware.ViewerID(c)
	ctx := c.Request.Context()

	var input struct {
		Name         string   `json:"name" binding:"required,min=1,max=150"`
		Description  string   `json:"description"`
		MemberEmails []string `json:"member_emails"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name is required"})
		return
	}

	group, err := stores.Groups.ByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	updates := map[string]interface{}{
		"name":        input.Name,
		"description": input.Description,
	}
	if err := stores.Groups.Update(ctx, group.ID, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group"})
		return
	}

	// Full replace, no diffing: delete every membership row, then reinsert.
	if err := stores.Groups.DeleteMembers(ctx, group.ID); err != nil {
		log.Error("group membership clear failed",
			zap.String("group_id", group.ID),
			zap.Error(err))
	}

	memberIDs := resolveMemberSet(c, viewerID, input.MemberEmails)
	memberships := make([]models.GroupMembership, 0, len(memberIDs))
	for _, uid := range memberIDs {
		memberships = append(memberships, models.GroupMembership{GroupID: group.ID, UserID: uid})
	}
	if err := stores.Groups.InsertMembers(ctx, memberships); err != nil {
		log.Error("group member reinsert failed",
			zap.String("group_id", group.ID),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group updated"})
}

// DeleteGroup removes a workgroup.
func DeleteGroup(c *gin.Context) {
	ctx := c.Request.Context()

	group, err := stores.Groups.ByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	if err := stores.Groups.DeleteMembers(ctx, group.ID); err != nil {
		log.Error("group membership cleanup failed",
			zap.String("group_id", group.ID),
			zap.Error(err))
	}
	if err := stores.Groups.Delete(ctx, group.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}

// resolveMemberSet maps invited emails to user ids, deduplicated, with the
// acting user first. Unknown emails are dropped silently.
func resolveMemberSet(c *gin.Context, actorID string, emails []string) []string {
	ids := []string{actorID}
	seen := map[string]struct{}{actorID: {}}

	resolved, err := stores.Users.IDsByEmails(c.Request.Context(), emails)
	if err != nil {
		log.Error("member email resolution failed", zap.Error(err))
		return ids
	}
	for _, id := range resolved {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
