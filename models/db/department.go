package dbmodels

import "github.com/pkg/errors"

type Department struct {
	BaseWorkspaceModel
	Name        string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`
}

func (d *Department) Validate() error {
	if err := d.BaseWorkspaceModel.Validate(); err != nil {
		return err
	}
	if d.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}
