package formsapimodels

import (
	"time"

	"crm-backend/models"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
)

type TemplateData struct {
	Name            string                 `json:"name"`
	Fields          []models.FieldDef      `json:"fields"`
	RequestSettings models.RequestSettings `json:"request_settings"`
}

func (r TemplateData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название шаблона")
	}
	return nil
}

type TemplateView struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Fields          []models.FieldDef      `json:"fields"`
	RequestSettings models.RequestSettings `json:"request_settings"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func TemplateConvert(rec dbmodels.FormTemplate) TemplateView {
	return TemplateView{
		ID:              rec.ID,
		Name:            rec.Name,
		Fields:          rec.Fields,
		RequestSettings: rec.RequestSettings,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

// ToggleColumnData это включение/выключение специальной колонки шаблона
type ToggleColumnData struct {
	Column  string `json:"column"` // department/status/priority/company/client
	Enabled bool   `json:"enabled"`
}

func (r ToggleColumnData) Validate() error {
	if r.Column == "" {
		return errors.New("не указана колонка")
	}
	return nil
}

// ToggleColumnResult это затронутая колонка; при выключении вызывающая сторона
// обязана предупредить о данных, уже сохранённых в записях
type ToggleColumnResult struct {
	Field      *models.FieldDef `json:"field,omitempty"`
	Removed    bool             `json:"removed"`
	HasRecords bool             `json:"has_records"`
}
