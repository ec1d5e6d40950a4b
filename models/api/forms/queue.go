package formsapimodels

import (
	"time"

	"crm-backend/models"
)

// QueueItem это строка очереди обработки по шаблону: запись формы,
// дополненная состоянием связанной заявки.
type QueueItem struct {
	RecordID       string           `json:"record_id"`
	RequestID      string           `json:"request_id,omitempty"`
	EntryData      models.EntryData `json:"entry_data"`
	Status         string           `json:"status,omitempty"`
	StatusName     string           `json:"status_name,omitempty"`
	Priority       string           `json:"priority,omitempty"`
	AssigneeID     string           `json:"assignee_id,omitempty"`
	AssigneeName   string           `json:"assignee_name,omitempty"`
	DepartmentID   string           `json:"department_id,omitempty"`
	DepartmentName string           `json:"department_name,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

type QueueView struct {
	TemplateID   string           `json:"template_id"`
	Fields       models.FieldList `json:"fields"`
	ShowStatus   bool             `json:"show_status"`
	ShowPriority bool             `json:"show_priority"`
	Items        []QueueItem      `json:"items"`
	Total        int64            `json:"total"`
}
