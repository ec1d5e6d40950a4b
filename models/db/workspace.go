package dbmodels

import "github.com/pkg/errors"

type WorkspaceStatus string

const (
	WorkspaceActiveStatus    WorkspaceStatus = "active"
	WorkspaceSuspendedStatus WorkspaceStatus = "suspended"
	WorkspaceArchivedStatus  WorkspaceStatus = "archived"
)

type Workspace struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255)"`
	Description string          `gorm:"type:text"`
	Status      WorkspaceStatus `gorm:"type:varchar(50);default:'active'"`
	Users       []WorkspaceUser `gorm:"foreignKey:WorkspaceID"`
}

func (w *Workspace) Validate() error {
	if w.Name == "" {
		return errors.New("не указано название workspace")
	}
	return nil
}
