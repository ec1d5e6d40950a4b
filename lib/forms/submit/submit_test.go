package submit

import (
	"testing"

	"crm-backend/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var sampleFields = models.FieldList{
	{Key: "full_name", Label: "Full Name", Type: models.FieldTypeText, Required: true},
	{Key: "amount", Label: "Amount", Type: models.FieldTypeNumber},
	{Key: "urgent", Label: "Urgent", Type: models.FieldTypeBoolean},
	{Key: "department_id", Label: "Department", Type: models.FieldTypeDepartmentSelect},
}

func TestRowDefaults(t *testing.T) {
	t.Run(`boolean false, text empty`, func(t *testing.T) {
		row := RowDefaults(sampleFields, "dep-7", "dep-1")
		require.Equal(t, false, row["urgent"])
		require.Equal(t, "", row["full_name"])
		require.Equal(t, "dep-7", row["department_id"])
	})
	t.Run(`department falls back to first known`, func(t *testing.T) {
		row := RowDefaults(sampleFields, "", "dep-1")
		require.Equal(t, "dep-1", row["department_id"])
	})
	t.Run(`status and priority defaults`, func(t *testing.T) {
		fields := models.FieldList{
			{Key: "status", Label: "Status", Type: models.FieldTypeStatusSelect},
			{Key: "priority", Label: "Priority", Type: models.FieldTypePrioritySelect},
		}
		row := RowDefaults(fields, "", "")
		require.Equal(t, string(models.RequestStatusNew), row["status"])
		require.Equal(t, string(models.RequestPriorityMedium), row["priority"])
	})
}

func TestValidateRow(t *testing.T) {
	t.Run(`required empty fails`, func(t *testing.T) {
		err := ValidateRow(sampleFields, models.EntryData{"full_name": ""})
		require.NotNil(t, err)
		var vErr ValidationError
		require.True(t, errors.As(err, &vErr))
		require.Equal(t, "full_name", vErr.Field)
		require.Equal(t, "required", vErr.Reason)
	})
	t.Run(`required nil fails`, func(t *testing.T) {
		err := ValidateRow(sampleFields, models.EntryData{})
		require.NotNil(t, err)
	})
	t.Run(`optional empty accepted`, func(t *testing.T) {
		err := ValidateRow(sampleFields, models.EntryData{"full_name": "Ada", "amount": ""})
		require.Nil(t, err)
	})
}

func TestCoerceRow(t *testing.T) {
	t.Run(`empty number omitted`, func(t *testing.T) {
		data := CoerceRow(sampleFields, models.EntryData{"full_name": "Ada", "amount": ""}, "")
		_, exist := data["amount"]
		require.False(t, exist)
	})
	t.Run(`number parsed from string`, func(t *testing.T) {
		data := CoerceRow(sampleFields, models.EntryData{"full_name": "Ada", "amount": "42"}, "")
		require.Equal(t, float64(42), data["amount"])
	})
	t.Run(`boolean always strict`, func(t *testing.T) {
		data := CoerceRow(sampleFields, models.EntryData{"full_name": "Ada"}, "")
		require.Equal(t, false, data["urgent"])
		data = CoerceRow(sampleFields, models.EntryData{"full_name": "Ada", "urgent": "on"}, "")
		require.Equal(t, true, data["urgent"])
	})
	t.Run(`empty department defaulted`, func(t *testing.T) {
		data := CoerceRow(sampleFields, models.EntryData{"full_name": "Ada"}, "dep-1")
		require.Equal(t, "dep-1", data["department_id"])
	})
	t.Run(`empty department omitted without fallback`, func(t *testing.T) {
		data := CoerceRow(sampleFields, models.EntryData{"full_name": "Ada"}, "")
		_, exist := data["department_id"]
		require.False(t, exist)
	})
	t.Run(`text trimmed, optional empty omitted`, func(t *testing.T) {
		fields := models.FieldList{{Key: "note", Label: "Note", Type: models.FieldTypeText}}
		data := CoerceRow(fields, models.EntryData{"note": "  hi  "}, "")
		require.Equal(t, "hi", data["note"])
		data = CoerceRow(fields, models.EntryData{"note": "   "}, "")
		_, exist := data["note"]
		require.False(t, exist)
	})
}

func TestRenderTemplate(t *testing.T) {
	row := models.EntryData{"full_name": "Ada", "amount": float64(3)}
	require.Equal(t, "Request for Ada (3)", RenderTemplate("Request for {full_name} ({amount})", row))
	t.Run(`unresolved placeholder stays literal`, func(t *testing.T) {
		require.Equal(t, "Hello {missing}", RenderTemplate("Hello {missing}", row))
	})
}

func TestBuildRequestDraft(t *testing.T) {
	settings := models.RequestSettings{
		Enabled:       true,
		DepartmentID:  "D1",
		Priority:      models.RequestPriorityHigh,
		TitleTemplate: "Request for {full_name}",
	}
	fields := models.FieldList{{Key: "full_name", Label: "Full Name", Type: models.FieldTypeText, Required: true}}

	t.Run(`scenario from routing settings`, func(t *testing.T) {
		draft, err := BuildRequestDraft("T", fields, settings, models.EntryData{"full_name": "Ada"})
		require.Nil(t, err)
		require.Equal(t, "Request for Ada", draft.Title)
		require.Equal(t, models.RequestPriorityHigh, draft.Priority)
		require.Equal(t, "D1", draft.DepartmentID)
		require.Equal(t, "Full Name: Ada", draft.Description)
	})
	t.Run(`row department wins over settings`, func(t *testing.T) {
		withKey := settings
		withKey.DepartmentFieldKey = "department_id"
		draft, err := BuildRequestDraft("T", fields, withKey, models.EntryData{"full_name": "Ada", "department_id": "D2"})
		require.Nil(t, err)
		require.Equal(t, "D2", draft.DepartmentID)
	})
	t.Run(`no department fails`, func(t *testing.T) {
		_, err := BuildRequestDraft("T", fields, models.RequestSettings{Enabled: true}, models.EntryData{})
		require.NotNil(t, err)
	})
	t.Run(`template name as title fallback`, func(t *testing.T) {
		noTitle := settings
		noTitle.TitleTemplate = ""
		draft, err := BuildRequestDraft("Заявка на доступ", fields, noTitle, models.EntryData{"full_name": "Ada"})
		require.Nil(t, err)
		require.Equal(t, "Заявка на доступ", draft.Title)
	})
}

func TestProcessBatch(t *testing.T) {
	rows := []models.EntryData{
		{"full_name": "A"},
		{"full_name": ""},
		{"full_name": "C"},
	}

	t.Run(`stops at first failure`, func(t *testing.T) {
		created := []string{}
		succeeded, failedAt, err := ProcessBatch(rows, func(row models.EntryData) error {
			name := row["full_name"].(string)
			if name == "" {
				return errors.New("пустое имя")
			}
			created = append(created, name)
			return nil
		})
		require.NotNil(t, err)
		require.Equal(t, 1, succeeded)
		require.Equal(t, 1, failedAt)
		require.Equal(t, []string{"A"}, created)
	})
	t.Run(`all rows created`, func(t *testing.T) {
		succeeded, failedAt, err := ProcessBatch(rows[:1], func(models.EntryData) error { return nil })
		require.Nil(t, err)
		require.Equal(t, 1, succeeded)
		require.Equal(t, -1, failedAt)
	})
}
