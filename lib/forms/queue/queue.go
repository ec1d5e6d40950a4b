package queue

import (
	formsschema "crm-backend/lib/forms/schema"
	"crm-backend/models"
	formsapimodels "crm-backend/models/api/forms"
	dbmodels "crm-backend/models/db"
)

// DepartmentNames отображает id отдела в название для отображения.
type DepartmentNames map[string]string

// Resolve возвращает название отдела, при отсутствии отдаёт сырой id.
func (d DepartmentNames) Resolve(departmentID string) string {
	if departmentID == "" {
		return ""
	}
	if name, exist := d[departmentID]; exist && name != "" {
		return name
	}
	return departmentID
}

// DisplayValue готовит значение ячейки к отображению: сохранённый id
// отдела подменяется его названием.
func DisplayValue(field models.FieldDef, value interface{}, departments DepartmentNames) interface{} {
	if !formsschema.Matches(formsschema.ColumnDepartment, field) {
		return value
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return value
	}
	return departments.Resolve(id)
}

// ShouldShowStatus определяет, показывать ли статус заявки в очереди.
// Если авторы шаблона завели свою текстовую колонку статуса, штатная
// колонка прячется, явная колонка типа status_select её возвращает.
func ShouldShowStatus(fields models.FieldList) bool {
	return shouldShowWorkflowColumn(fields, formsschema.ColumnStatus, models.FieldTypeStatusSelect)
}

// ShouldShowPriority работает так же для приоритета заявки.
func ShouldShowPriority(fields models.FieldList) bool {
	return shouldShowWorkflowColumn(fields, formsschema.ColumnPriority, models.FieldTypePrioritySelect)
}

func shouldShowWorkflowColumn(fields models.FieldList, kind formsschema.ColumnKind, explicit models.FieldType) bool {
	idx, found := formsschema.FindColumn(kind, fields)
	if !found {
		return true
	}
	return fields[idx].Type == explicit
}

// ProjectQueue собирает строки очереди: запись формы плюс состояние
// связанной заявки. Отсутствие заявки не ошибка, строка остаётся без неё.
func ProjectQueue(fields models.FieldList, records []dbmodels.FormRecord, requests map[string]dbmodels.Request, departments DepartmentNames) []formsapimodels.QueueItem {
	items := make([]formsapimodels.QueueItem, 0, len(records))
	for _, record := range records {
		item := formsapimodels.QueueItem{
			RecordID:  record.ID,
			EntryData: projectEntryData(fields, record.EntryData, departments),
			CreatedAt: record.CreatedAt,
		}
		if requestID := record.LinkedRequestID(); requestID != "" {
			if req, exist := requests[requestID]; exist {
				item.RequestID = req.ID
				item.Status = string(req.Status)
				item.StatusName = req.Status.ToHuman()
				item.Priority = string(req.Priority)
				item.DepartmentID = req.DepartmentID
				item.DepartmentName = departments.Resolve(req.DepartmentID)
				if req.AssignedToID != nil {
					item.AssigneeID = *req.AssignedToID
					if req.AssignedTo != nil {
						item.AssigneeName = req.AssignedTo.GetFullName()
					}
				}
			}
		}
		items = append(items, item)
	}
	return items
}

func projectEntryData(fields models.FieldList, data models.EntryData, departments DepartmentNames) models.EntryData {
	projected := models.EntryData{}
	for key, value := range data {
		projected[key] = value
	}
	for _, field := range fields {
		if value, exist := projected[field.Key]; exist {
			projected[field.Key] = DisplayValue(field, value, departments)
		}
	}
	return projected
}
