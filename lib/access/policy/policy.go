package policy

import (
	"crm-backend/models"
)

// Action это действие, доступность которого определяется ролью.
type Action string

const (
	ActionSubmitTemplate      Action = "submit_template"
	ActionManageTemplate      Action = "manage_template"
	ActionViewAllRecords      Action = "view_all_records"
	ActionViewOwnRecords      Action = "view_own_records"
	ActionExportRecords       Action = "export_records"
	ActionChangeRequestStatus Action = "change_request_status"
	ActionAssignRequest       Action = "assign_request"
	ActionUnassignRequest     Action = "unassign_request"
	ActionDeleteRequest       Action = "delete_request"
	ActionSelfAssign          Action = "self_assign"
)

// AssignableRoles это роли, которые могут быть исполнителями заявок.
// Руководители и администраторы в подсказках назначения не участвуют.
var AssignableRoles = []models.UserRole{models.UserRoleUser}

var managerAndUp = []models.UserRole{
	models.UserRoleSuperAdmin,
	models.UserRoleSystemAdmin,
	models.UserRoleAdmin,
	models.UserRoleManager,
}

var adminAndUp = []models.UserRole{
	models.UserRoleSuperAdmin,
	models.UserRoleSystemAdmin,
	models.UserRoleAdmin,
}

var submitRoles = []models.UserRole{
	models.UserRoleSuperAdmin,
	models.UserRoleSystemAdmin,
	models.UserRoleAdmin,
	models.UserRoleManager,
	models.UserRoleUser,
}

var actionRoles = map[Action][]models.UserRole{
	ActionSubmitTemplate:      submitRoles,
	ActionManageTemplate:      managerAndUp,
	ActionViewAllRecords:      managerAndUp,
	ActionExportRecords:       managerAndUp,
	ActionViewOwnRecords:      {models.UserRoleSuperAdmin, models.UserRoleSystemAdmin, models.UserRoleAdmin, models.UserRoleManager, models.UserRoleUser, models.UserRoleViewer},
	ActionChangeRequestStatus: submitRoles,
	ActionAssignRequest:       managerAndUp,
	ActionUnassignRequest:     managerAndUp,
	ActionDeleteRequest:       submitRoles,
	ActionSelfAssign:          {models.UserRoleSuperAdmin, models.UserRoleSystemAdmin, models.UserRoleAdmin, models.UserRoleManager, models.UserRoleUser, models.UserRoleViewer},
}

// Can проверяет действие без контекста конкретной заявки.
// Неизвестная роль запрещает любое действие.
func Can(role models.UserRole, action Action) bool {
	role = role.Normalized()
	if !role.IsKnown() {
		return false
	}
	allowed, ok := actionRoles[action]
	if !ok {
		return false
	}
	return role.In(allowed...)
}

// Actor это действующий пользователь в разрезе политики доступа.
type Actor struct {
	ID           string
	Role         models.UserRole
	WorkspaceID  string
	DepartmentID string
}

// RequestContext это поля заявки, влияющие на решение политики.
type RequestContext struct {
	DepartmentID string
	CreatedByID  string
	AssignedToID string
}

func (a Actor) isParticipant(req RequestContext) bool {
	if a.ID == "" {
		return false
	}
	return a.ID == req.CreatedByID || a.ID == req.AssignedToID
}

// CanChangeRequestStatus определяет право менять статус заявки.
// Администраторы без ограничений, руководитель в своем отделе или как
// участник, пользователь только как участник.
func CanChangeRequestStatus(actor Actor, req RequestContext) bool {
	role := actor.Role.Normalized()
	if !role.IsKnown() || role == models.UserRoleViewer {
		return false
	}
	if role.In(adminAndUp...) {
		return true
	}
	if role == models.UserRoleManager {
		if actor.DepartmentID != "" && actor.DepartmentID == req.DepartmentID {
			return true
		}
		return actor.isParticipant(req)
	}
	return actor.isParticipant(req)
}

// CanViewRequest определяет видимость заявки. В отличие от смены
// статуса наблюдатель видит заявки, в которых он участник.
func CanViewRequest(actor Actor, req RequestContext) bool {
	role := actor.Role.Normalized()
	if !role.IsKnown() {
		return false
	}
	if role.In(adminAndUp...) {
		return true
	}
	if role == models.UserRoleManager && actor.DepartmentID != "" && actor.DepartmentID == req.DepartmentID {
		return true
	}
	return actor.isParticipant(req)
}

// CanDeleteRequest повторяет условия смены статуса.
func CanDeleteRequest(actor Actor, req RequestContext) bool {
	return CanChangeRequestStatus(actor, req)
}

// CanAssign определяет право назначать исполнителя третьим лицом.
func CanAssign(actor Actor, req RequestContext) bool {
	role := actor.Role.Normalized()
	if !role.IsKnown() {
		return false
	}
	if role.In(adminAndUp...) {
		return true
	}
	if role == models.UserRoleManager {
		return actor.DepartmentID != "" && actor.DepartmentID == req.DepartmentID
	}
	return false
}

// CanUnassign определяет право снимать исполнителя.
func CanUnassign(actor Actor, req RequestContext) bool {
	return CanAssign(actor, req)
}

// CanSelfAssign определяет право взять заявку на себя.
// Пользователь и наблюдатель могут взять только свободную заявку.
func CanSelfAssign(actor Actor, req RequestContext) bool {
	role := actor.Role.Normalized()
	if !role.IsKnown() {
		return false
	}
	if CanAssign(actor, req) {
		return true
	}
	return req.AssignedToID == ""
}

// IsAssignable проверяет, что роль может быть исполнителем заявки.
func IsAssignable(role models.UserRole) bool {
	return role.Normalized().In(AssignableRoles...)
}
