package workflowapimodels

import (
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
)

type DepartmentData struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r DepartmentData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}

type DepartmentView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
	}
}
