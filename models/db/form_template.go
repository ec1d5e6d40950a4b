package dbmodels

import (
	"crm-backend/models"

	"github.com/pkg/errors"
)

// FormTemplate это шаблон табличного ввода: упорядоченный список колонок
// и настройки маршрутизации заявок
type FormTemplate struct {
	BaseWorkspaceModel
	Name            string                 `gorm:"type:varchar(255)"`
	Fields          models.FieldList       `gorm:"type:jsonb"`
	RequestSettings models.RequestSettings `gorm:"type:jsonb"`
}

func (t *FormTemplate) Validate() error {
	if err := t.BaseWorkspaceModel.Validate(); err != nil {
		return err
	}
	if t.Name == "" {
		return errors.New("не указано название шаблона")
	}
	return nil
}
