package policy

import (
	"testing"

	"crm-backend/models"

	"github.com/stretchr/testify/require"
)

func TestCan(t *testing.T) {
	t.Run(`manage template`, func(t *testing.T) {
		require.True(t, Can(models.UserRoleAdmin, ActionManageTemplate))
		require.True(t, Can(models.UserRoleManager, ActionManageTemplate))
		require.False(t, Can(models.UserRoleUser, ActionManageTemplate))
		require.False(t, Can(models.UserRoleViewer, ActionManageTemplate))
	})
	t.Run(`submit template`, func(t *testing.T) {
		require.True(t, Can(models.UserRoleUser, ActionSubmitTemplate))
		require.False(t, Can(models.UserRoleViewer, ActionSubmitTemplate))
	})
	t.Run(`case insensitive role`, func(t *testing.T) {
		require.True(t, Can(models.UserRole("admin"), ActionExportRecords))
		require.True(t, Can(models.UserRole(" manager "), ActionViewAllRecords))
	})
	t.Run(`unknown role denied`, func(t *testing.T) {
		require.False(t, Can(models.UserRole("OPERATOR"), ActionViewOwnRecords))
		require.False(t, Can(models.UserRole(""), ActionSubmitTemplate))
	})
}

func TestCanChangeRequestStatus(t *testing.T) {
	req := RequestContext{
		DepartmentID: "dep-1",
		CreatedByID:  "creator",
		AssignedToID: "assignee",
	}

	t.Run(`admin always allowed`, func(t *testing.T) {
		actor := Actor{ID: "someone", Role: models.UserRoleAdmin}
		require.True(t, CanChangeRequestStatus(actor, req))
	})
	t.Run(`manager own department`, func(t *testing.T) {
		actor := Actor{ID: "someone", Role: models.UserRoleManager, DepartmentID: "dep-1"}
		require.True(t, CanChangeRequestStatus(actor, req))
	})
	t.Run(`manager foreign department denied`, func(t *testing.T) {
		actor := Actor{ID: "someone", Role: models.UserRoleManager, DepartmentID: "dep-2"}
		require.False(t, CanChangeRequestStatus(actor, req))
	})
	t.Run(`manager foreign department but participant`, func(t *testing.T) {
		actor := Actor{ID: "creator", Role: models.UserRoleManager, DepartmentID: "dep-2"}
		require.True(t, CanChangeRequestStatus(actor, req))
	})
	t.Run(`user participant only`, func(t *testing.T) {
		assignee := Actor{ID: "assignee", Role: models.UserRoleUser, DepartmentID: "dep-1"}
		require.True(t, CanChangeRequestStatus(assignee, req))
		outsider := Actor{ID: "someone", Role: models.UserRoleUser, DepartmentID: "dep-1"}
		require.False(t, CanChangeRequestStatus(outsider, req))
	})
	t.Run(`viewer always denied`, func(t *testing.T) {
		actor := Actor{ID: "creator", Role: models.UserRoleViewer, DepartmentID: "dep-1"}
		require.False(t, CanChangeRequestStatus(actor, req))
	})
	t.Run(`delete mirrors status change`, func(t *testing.T) {
		actor := Actor{ID: "someone", Role: models.UserRoleManager, DepartmentID: "dep-2"}
		require.Equal(t, CanChangeRequestStatus(actor, req), CanDeleteRequest(actor, req))
		actor.DepartmentID = "dep-1"
		require.Equal(t, CanChangeRequestStatus(actor, req), CanDeleteRequest(actor, req))
	})
}

func TestCanAssign(t *testing.T) {
	req := RequestContext{DepartmentID: "dep-1"}

	t.Run(`manager only own department`, func(t *testing.T) {
		require.True(t, CanAssign(Actor{ID: "m", Role: models.UserRoleManager, DepartmentID: "dep-1"}, req))
		require.False(t, CanAssign(Actor{ID: "m", Role: models.UserRoleManager, DepartmentID: "dep-2"}, req))
	})
	t.Run(`user cannot assign third party`, func(t *testing.T) {
		require.False(t, CanAssign(Actor{ID: "u", Role: models.UserRoleUser, DepartmentID: "dep-1"}, req))
	})
	t.Run(`self assign free request`, func(t *testing.T) {
		actor := Actor{ID: "u", Role: models.UserRoleUser}
		require.True(t, CanSelfAssign(actor, RequestContext{DepartmentID: "dep-1"}))
		require.False(t, CanSelfAssign(actor, RequestContext{DepartmentID: "dep-1", AssignedToID: "other"}))
	})
	t.Run(`unassign mirrors assign`, func(t *testing.T) {
		actor := Actor{ID: "m", Role: models.UserRoleManager, DepartmentID: "dep-1"}
		require.Equal(t, CanAssign(actor, req), CanUnassign(actor, req))
	})
}

func TestIsAssignable(t *testing.T) {
	require.True(t, IsAssignable(models.UserRoleUser))
	require.True(t, IsAssignable(models.UserRole("user")))
	require.False(t, IsAssignable(models.UserRoleManager))
	require.False(t, IsAssignable(models.UserRoleAdmin))
	require.False(t, IsAssignable(models.UserRoleViewer))
}
