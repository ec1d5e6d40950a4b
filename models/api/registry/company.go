package registryapimodels

import (
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
)

type CompanyData struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Address            string `json:"address,omitempty"`
}

func (r CompanyData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название компании")
	}
	return nil
}

type CompanyView struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Address            string `json:"address,omitempty"`
}

func CompanyConvert(rec dbmodels.Company) CompanyView {
	return CompanyView{
		ID:                 rec.ID,
		Name:               rec.Name,
		RegistrationNumber: rec.RegistrationNumber,
		Email:              rec.Email,
		Phone:              rec.Phone,
		Address:            rec.Address,
	}
}
