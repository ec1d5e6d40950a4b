package middleware

import (
	"crm-backend/lib/access/policy"
	authutils "crm-backend/lib/utils/auth-utils"
	"crm-backend/models"
	apimodels "crm-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func SuperAdminRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx).Normalized() != models.UserRoleSuperAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

func GetUserWorkspace(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if workspace, exist := claims["workspace"]; exist {
		if value, ok := workspace.(string); ok {
			return value
		}
	}
	return ""
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if value, ok := sub.(string); ok {
			return value
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.NormalizeRole(stringRole)
		}
	}
	return ""
}

func GetUserDepartment(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if department, exist := claims["department"]; exist {
		if value, ok := department.(string); ok {
			return value
		}
	}
	return ""
}

// GetActor собирает контекст действующего пользователя из claims токена
func GetActor(ctx *fiber.Ctx) policy.Actor {
	return policy.Actor{
		ID:           GetUserID(ctx),
		Role:         GetUserRole(ctx),
		WorkspaceID:  ResolveWorkspace(ctx),
		DepartmentID: GetUserDepartment(ctx),
	}
}

// ResolveWorkspace возвращает workspace для выполнения операции.
// Явный выбор чужого workspace через query параметр доступен только
// кросс-workspace ролям, остальные всегда работают в своём.
func ResolveWorkspace(ctx *fiber.Ctx) string {
	own := GetUserWorkspace(ctx)
	requested := ctx.Query("workspace_id")
	if requested == "" || requested == own {
		return own
	}
	if GetUserRole(ctx).IsCrossWorkspace() {
		return requested
	}
	return own
}
