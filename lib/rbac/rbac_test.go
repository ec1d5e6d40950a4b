package rbac

import (
	"testing"

	"crm-backend/models"

	"github.com/stretchr/testify/require"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/workflow/request/{id}/assign [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r1 := pathToRegex(path)

		validUri := "/api/v1/workflow/request/123-321/assign"
		isMatch := r1.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri := "/api/v1/workflow/request/assign"
		isMatch = r1.MatchString(invalidUri)
		require.Equal(t, false, isMatch)

		path, method, err = parseSwaggerPattern("/api/v1/forms/record/{template_id}/queue [post]")
		require.Nil(t, err)
		require.Equal(t, POST, method)
		r2 := pathToRegex(path)

		validUri = "/api/v1/forms/record/qwe-ewr123-wr-12/queue"
		isMatch = r2.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri = "/api/v1/forms/record/queue"
		isMatch = r2.MatchString(invalidUri)
		require.Equal(t, false, isMatch)
	})

	t.Run(`правила регистрируются и разрешают по роли`, func(t *testing.T) {
		NewHandler()

		ruleFn, found := Instance.GetRuleFunc("PUT", "/api/v1/workflow/request/abc-1/assign")
		require.True(t, found)
		require.True(t, ruleFn("ws", "u1", models.UserRoleManager, "/api/v1/workflow/request/abc-1/assign"))
		require.False(t, ruleFn("ws", "u1", models.UserRoleViewer, "/api/v1/workflow/request/abc-1/assign"))

		ruleFn, found = Instance.GetRuleFunc("POST", "/api/v1/forms/record/submit")
		require.True(t, found)
		require.True(t, ruleFn("ws", "u1", models.UserRoleUser, "/api/v1/forms/record/submit"))
		require.False(t, ruleFn("ws", "u1", models.UserRoleViewer, "/api/v1/forms/record/submit"))

		_, found = Instance.GetRuleFunc("POST", "/api/v1/unknown")
		require.False(t, found)
	})

	t.Run(`permissions собираются для фронта`, func(t *testing.T) {
		NewHandler()
		permissions := Instance.GetPermissions(models.UserRoleViewer)
		require.NotEmpty(t, permissions)
		require.Contains(t, permissions[models.RequestModule], models.ViewPermission)
		require.NotContains(t, permissions[models.RequestModule], models.EditPermission)
	})
}
