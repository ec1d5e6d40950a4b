package dbmodels

import (
	"crm-backend/models"

	"github.com/pkg/errors"
)

// Request это заявка, маршрутизированная в подразделение
type Request struct {
	BaseWorkspaceModel
	Title        string                 `gorm:"type:varchar(255)"`
	Description  string                 `gorm:"type:text"`
	Status       models.RequestStatus   `gorm:"type:varchar(50);index"`
	Priority     models.RequestPriority `gorm:"type:varchar(50)"`
	DepartmentID string                 `gorm:"type:varchar(36);index"`
	Department   *Department            `gorm:"foreignKey:DepartmentID"`
	AssignedToID *string                `gorm:"type:varchar(36);index"`
	AssignedTo   *WorkspaceUser         `gorm:"foreignKey:AssignedToID"`
	CreatedByID  string                 `gorm:"type:varchar(36);index"`
	CreatedBy    *WorkspaceUser         `gorm:"foreignKey:CreatedByID"`
	Meta         models.MetaData        `gorm:"type:jsonb"`
}

func (r *Request) Validate() error {
	if err := r.BaseWorkspaceModel.Validate(); err != nil {
		return err
	}
	if r.Title == "" {
		return errors.New("не указан заголовок заявки")
	}
	if r.DepartmentID == "" {
		return errors.New("заявка не привязана к подразделению")
	}
	return nil
}

// LinkedRecordID возвращает ссылку на запись шаблона, породившую заявку
func (r Request) LinkedRecordID() string {
	if r.Meta == nil {
		return ""
	}
	return r.Meta[models.MetaKeyRecordID]
}

// TemplateID возвращает шаблон, породивший заявку (пусто для заявок, созданных напрямую)
func (r Request) TemplateID() string {
	if r.Meta == nil {
		return ""
	}
	return r.Meta[models.MetaKeyTemplateID]
}
