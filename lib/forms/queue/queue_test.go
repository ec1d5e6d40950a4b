package queue

import (
	"testing"

	"crm-backend/models"
	dbmodels "crm-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestShouldShowStatus(t *testing.T) {
	t.Run(`no status field shows platform status`, func(t *testing.T) {
		fields := models.FieldList{{Key: "name", Label: "Name", Type: models.FieldTypeText}}
		require.True(t, ShouldShowStatus(fields))
	})
	t.Run(`explicit status field shows`, func(t *testing.T) {
		fields := models.FieldList{{Key: "status", Label: "Status", Type: models.FieldTypeStatusSelect}}
		require.True(t, ShouldShowStatus(fields))
	})
	t.Run(`custom text status hides platform status`, func(t *testing.T) {
		fields := models.FieldList{{Key: "status_custom", Label: "Status", Type: models.FieldTypeText}}
		require.False(t, ShouldShowStatus(fields))
	})
	t.Run(`priority mirrors`, func(t *testing.T) {
		fields := models.FieldList{{Key: "priority", Label: "Priority", Type: models.FieldTypeText}}
		require.False(t, ShouldShowPriority(fields))
		fields[0].Type = models.FieldTypePrioritySelect
		require.True(t, ShouldShowPriority(fields))
	})
}

func TestDisplayValue(t *testing.T) {
	departments := DepartmentNames{"dep-1": "ИТ отдел"}
	depField := models.FieldDef{Key: "department_id", Label: "Department", Type: models.FieldTypeDepartmentSelect}

	require.Equal(t, "ИТ отдел", DisplayValue(depField, "dep-1", departments))
	t.Run(`unresolved id stays raw`, func(t *testing.T) {
		require.Equal(t, "dep-9", DisplayValue(depField, "dep-9", departments))
	})
	t.Run(`plain field untouched`, func(t *testing.T) {
		textField := models.FieldDef{Key: "name", Label: "Name", Type: models.FieldTypeText}
		require.Equal(t, "dep-1", DisplayValue(textField, "dep-1", departments))
	})
}

func TestProjectQueue(t *testing.T) {
	fields := models.FieldList{
		{Key: "full_name", Label: "Full Name", Type: models.FieldTypeText},
		{Key: "department_id", Label: "Department", Type: models.FieldTypeDepartmentSelect},
	}
	departments := DepartmentNames{"dep-1": "ИТ отдел"}
	reqID := "req-1"
	assignee := "user-5"

	records := []dbmodels.FormRecord{
		{
			BaseModel: dbmodels.BaseModel{ID: "rec-1"},
			RequestID: &reqID,
			EntryData: models.EntryData{"full_name": "Ada", "department_id": "dep-1"},
		},
		{
			BaseModel: dbmodels.BaseModel{ID: "rec-2"},
			EntryData: models.EntryData{"full_name": "Bob"},
		},
	}
	requests := map[string]dbmodels.Request{
		"req-1": {
			BaseWorkspaceModel: dbmodels.BaseWorkspaceModel{BaseModel: dbmodels.BaseModel{ID: "req-1"}},
			Status:             models.RequestStatusAssigned,
			Priority:           models.RequestPriorityHigh,
			DepartmentID:       "dep-1",
			AssignedToID:       &assignee,
		},
	}

	items := ProjectQueue(fields, records, requests, departments)
	require.Len(t, items, 2)

	t.Run(`linked request projected`, func(t *testing.T) {
		item := items[0]
		require.Equal(t, "req-1", item.RequestID)
		require.Equal(t, string(models.RequestStatusAssigned), item.Status)
		require.Equal(t, "ИТ отдел", item.DepartmentName)
		require.Equal(t, "user-5", item.AssigneeID)
		require.Equal(t, "ИТ отдел", item.EntryData["department_id"])
	})
	t.Run(`missing request is not an error`, func(t *testing.T) {
		item := items[1]
		require.Equal(t, "rec-2", item.RecordID)
		require.Equal(t, "", item.RequestID)
		require.Equal(t, "", item.Status)
	})
}
