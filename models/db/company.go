package dbmodels

import "github.com/pkg/errors"

type Company struct {
	BaseWorkspaceModel
	Name               string `gorm:"type:varchar(255);index"`
	RegistrationNumber string `gorm:"type:varchar(100)"`
	Email              string `gorm:"type:varchar(255)"`
	Phone              string `gorm:"type:varchar(50)"`
	Address            string `gorm:"type:text"`
	Clients            []Client
}

func (c *Company) Validate() error {
	if err := c.BaseWorkspaceModel.Validate(); err != nil {
		return err
	}
	if c.Name == "" {
		return errors.New("не указано название компании")
	}
	return nil
}
