package models

import "strings"

type UserRole string

const (
	UserRoleSuperAdmin  UserRole = "SUPERADMIN"
	UserRoleSystemAdmin UserRole = "SYSTEM_ADMIN"
	UserRoleAdmin       UserRole = "ADMIN"
	UserRoleManager     UserRole = "MANAGER"
	UserRoleUser        UserRole = "USER"
	UserRoleViewer      UserRole = "VIEWER"
)

// роли в порядке убывания привилегий
var roleRank = map[UserRole]int{
	UserRoleSuperAdmin:  6,
	UserRoleSystemAdmin: 5,
	UserRoleAdmin:       4,
	UserRoleManager:     3,
	UserRoleUser:        2,
	UserRoleViewer:      1,
}

var roleHumanName = map[UserRole]string{
	UserRoleSuperAdmin:  "Суперадмин",
	UserRoleSystemAdmin: "Системный администратор",
	UserRoleAdmin:       "Администратор пространства",
	UserRoleManager:     "Руководитель подразделения",
	UserRoleUser:        "Пользователь",
	UserRoleViewer:      "Наблюдатель",
}

// NormalizeRole приводит роль к каноническому виду без учёта регистра.
// Неизвестное значение возвращается как есть, правило доступа для него не найдётся
func NormalizeRole(value string) UserRole {
	return UserRole(strings.ToUpper(strings.TrimSpace(value)))
}

func (r UserRole) Normalized() UserRole {
	return NormalizeRole(string(r))
}

func (r UserRole) IsKnown() bool {
	_, ok := roleRank[r.Normalized()]
	return ok
}

func (r UserRole) Rank() int {
	return roleRank[r.Normalized()]
}

// IsCrossWorkspace сообщает, разрешён ли явный выбор чужого workspace
func (r UserRole) IsCrossWorkspace() bool {
	n := r.Normalized()
	return n == UserRoleSuperAdmin || n == UserRoleSystemAdmin
}

func (r UserRole) In(roles ...UserRole) bool {
	n := r.Normalized()
	for _, role := range roles {
		if n == role {
			return true
		}
	}
	return false
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r.Normalized()]; exist {
		return human
	}
	return string(r)
}
