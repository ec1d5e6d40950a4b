package dbmodels

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type Client struct {
	BaseWorkspaceModel
	FirstName string   `gorm:"type:varchar(150)"`
	LastName  string   `gorm:"type:varchar(150)"`
	Email     string   `gorm:"type:varchar(255)"`
	Phone     string   `gorm:"type:varchar(50)"`
	Notes     string   `gorm:"type:text"`
	CompanyID *string  `gorm:"type:varchar(36);index"`
	Company   *Company `gorm:"foreignKey:CompanyID"`
}

func (c Client) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", c.FirstName, c.LastName))
}

func (c *Client) Validate() error {
	if err := c.BaseWorkspaceModel.Validate(); err != nil {
		return err
	}
	if c.FirstName == "" || c.LastName == "" {
		return errors.New("не указано имя клиента")
	}
	return nil
}
