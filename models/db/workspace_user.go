package dbmodels

import (
	"fmt"
	"strings"
	"time"

	"crm-backend/models"
	accessapimodels "crm-backend/models/api/access"
)

type WorkspaceUser struct {
	BaseWorkspaceModel
	Password     string `gorm:"type:varchar(128)"`
	FirstName    string `gorm:"type:varchar(150)"`
	LastName     string `gorm:"type:varchar(150)"`
	Email        string `gorm:"type:varchar(255);index"`
	IsActive     bool
	Role         models.UserRole `gorm:"type:varchar(50)"`
	DepartmentID *string         `gorm:"type:varchar(36);index"`
	Department   *Department     `gorm:"foreignKey:DepartmentID"`
	LastLogin    time.Time
}

func (u WorkspaceUser) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", u.FirstName, u.LastName))
}

func (u WorkspaceUser) ToModel() accessapimodels.UserView {
	view := accessapimodels.UserView{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.GetFullName(),
		Email:       u.Email,
		Role:        u.Role.Normalized(),
		RoleName:    u.Role.ToHuman(),
		WorkspaceID: u.WorkspaceID,
		IsActive:    u.IsActive,
	}
	if u.DepartmentID != nil {
		view.DepartmentID = *u.DepartmentID
	}
	if u.Department != nil {
		view.DepartmentName = u.Department.Name
	}
	return view
}
