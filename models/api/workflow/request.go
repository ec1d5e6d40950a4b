package workflowapimodels

import (
	"time"

	"crm-backend/models"
	apimodels "crm-backend/models/api"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
)

type RequestCreateData struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Priority     string `json:"priority,omitempty"`
	DepartmentID string `json:"department_id"`
}

func (r RequestCreateData) Validate() error {
	if r.Title == "" {
		return errors.New("не указан заголовок заявки")
	}
	if r.DepartmentID == "" {
		return errors.New("не указано подразделение")
	}
	return nil
}

type RequestStatusData struct {
	Status string `json:"status"`
}

func (r RequestStatusData) Validate() error {
	if _, ok := models.ParseRequestStatus(r.Status); !ok {
		return errors.Errorf("неизвестный статус: %v", r.Status)
	}
	return nil
}

type RequestAssignData struct {
	AssigneeID   string `json:"assignee_id,omitempty"`
	AssigneeName string `json:"assignee_name,omitempty"`
}

func (r RequestAssignData) Validate() error {
	if r.AssigneeID == "" && r.AssigneeName == "" {
		return errors.New("не указан исполнитель")
	}
	return nil
}

type RequestFilter struct {
	apimodels.Pagination
	DepartmentID string `json:"department_id,omitempty"`
	AssigneeID   string `json:"assignee_id,omitempty"`
}

type SuggestData struct {
	DepartmentID string `json:"department_id"`
	Query        string `json:"query,omitempty"`
}

func (r SuggestData) Validate() error {
	if r.DepartmentID == "" {
		return errors.New("не указано подразделение")
	}
	return nil
}

type AssigneeView struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

type RequestView struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description,omitempty"`
	Status         models.RequestStatus   `json:"status"`
	Priority       models.RequestPriority `json:"priority"`
	DepartmentID   string                 `json:"department_id"`
	DepartmentName string                 `json:"department_name,omitempty"`
	AssignedToID   string                 `json:"assigned_to_id,omitempty"`
	Assignee       *AssigneeView          `json:"assignee,omitempty"`
	CreatedByID    string                 `json:"created_by_id,omitempty"`
	TemplateID     string                 `json:"template_id,omitempty"`
	RecordID       string                 `json:"record_id,omitempty"`
	DoneAt         string                 `json:"done_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

func RequestConvert(rec dbmodels.Request) RequestView {
	view := RequestView{
		ID:           rec.ID,
		Title:        rec.Title,
		Description:  rec.Description,
		Status:       rec.Status,
		Priority:     rec.Priority,
		DepartmentID: rec.DepartmentID,
		CreatedByID:  rec.CreatedByID,
		TemplateID:   rec.TemplateID(),
		RecordID:     rec.LinkedRecordID(),
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	if rec.AssignedToID != nil {
		view.AssignedToID = *rec.AssignedToID
	}
	if rec.AssignedTo != nil {
		view.Assignee = &AssigneeView{
			ID:       rec.AssignedTo.ID,
			FullName: rec.AssignedTo.GetFullName(),
		}
	}
	if rec.Meta != nil {
		view.DoneAt = rec.Meta[models.MetaKeyDoneAt]
	}
	return view
}
