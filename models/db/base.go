package dbmodels

import (
	"time"

	"github.com/pkg/errors"
)

type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BaseWorkspaceModel struct {
	BaseModel
	WorkspaceID string `gorm:"type:varchar(36);index" json:"workspace_id"`
}

func (m BaseWorkspaceModel) Validate() error {
	if m.WorkspaceID == "" {
		return errors.New("отсутствует ссылка на workspace")
	}
	return nil
}
