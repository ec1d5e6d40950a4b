package formsapimodels

import (
	"time"

	"crm-backend/models"
	apimodels "crm-backend/models/api"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
)

type SubmitData struct {
	TemplateID string           `json:"template_id"`
	Data       models.EntryData `json:"data"`
}

func (r SubmitData) Validate() error {
	if r.TemplateID == "" {
		return errors.New("не указан шаблон")
	}
	return nil
}

type SubmitBatchData struct {
	TemplateID string             `json:"template_id"`
	Rows       []models.EntryData `json:"rows"`
}

func (r SubmitBatchData) Validate() error {
	if r.TemplateID == "" {
		return errors.New("не указан шаблон")
	}
	if len(r.Rows) == 0 {
		return errors.New("не переданы строки")
	}
	return nil
}

type RecordView struct {
	ID         string           `json:"id"`
	TemplateID string           `json:"template_id"`
	RequestID  string           `json:"request_id,omitempty"`
	EntryData  models.EntryData `json:"entry_data"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func RecordConvert(rec dbmodels.FormRecord) RecordView {
	view := RecordView{
		ID:         rec.ID,
		TemplateID: rec.TemplateID,
		EntryData:  rec.EntryData,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
	if rec.RequestID != nil {
		view.RequestID = *rec.RequestID
	}
	return view
}

type RecordFilter struct {
	apimodels.Pagination
	OwnOnly bool `json:"own_only,omitempty"`
}
