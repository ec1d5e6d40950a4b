package registryapimodels

import (
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
)

type ClientData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
}

func (r ClientData) Validate() error {
	if r.FirstName == "" || r.LastName == "" {
		return errors.New("не указано имя клиента")
	}
	return nil
}

type ClientView struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CompanyID   string `json:"company_id,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

func ClientConvert(rec dbmodels.Client) ClientView {
	view := ClientView{
		ID:        rec.ID,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		FullName:  rec.GetFullName(),
		Email:     rec.Email,
		Phone:     rec.Phone,
		Notes:     rec.Notes,
	}
	if rec.CompanyID != nil {
		view.CompanyID = *rec.CompanyID
	}
	if rec.Company != nil {
		view.CompanyName = rec.Company.Name
	}
	return view
}
