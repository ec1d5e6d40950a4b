package accessapimodels

import (
	"crm-backend/models"

	"github.com/pkg/errors"
)

type UserView struct {
	ID             string          `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Role           models.UserRole `json:"role"`
	RoleName       string          `json:"role_name"`
	WorkspaceID    string          `json:"workspace_id"`
	DepartmentID   string          `json:"department_id,omitempty"`
	DepartmentName string          `json:"department_name,omitempty"`
	IsActive       bool            `json:"is_active"`
}

type UserData struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

func (r UserData) Validate() error {
	if r.Email == "" {
		return errors.New("не указана почта")
	}
	if r.FirstName == "" || r.LastName == "" {
		return errors.New("не указаны имя и фамилия")
	}
	if !models.NormalizeRole(r.Role).IsKnown() {
		return errors.Errorf("неизвестная роль: %v", r.Role)
	}
	return nil
}

type UserFilter struct {
	DepartmentID string `json:"department_id,omitempty"`
	Query        string `json:"query,omitempty"`
}

func (r UserFilter) Validate() error {
	return nil
}
