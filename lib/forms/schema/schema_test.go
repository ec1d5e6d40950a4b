package schema

import (
	"testing"

	"crm-backend/models"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "full_name", Slugify("Full Name"))
	require.Equal(t, "department_id", Slugify(" Department  ID "))
	require.Equal(t, "amount_rub", Slugify("Amount (RUB)"))
	require.Equal(t, "", Slugify("!!!"))
}

func TestMatches(t *testing.T) {
	t.Run(`by type`, func(t *testing.T) {
		field := models.FieldDef{Key: "custom", Label: "Custom", Type: models.FieldTypeDepartmentSelect}
		require.True(t, Matches(ColumnDepartment, field))
	})
	t.Run(`by key`, func(t *testing.T) {
		field := models.FieldDef{Key: "Department_ID", Label: "Whatever", Type: models.FieldTypeText}
		require.True(t, Matches(ColumnDepartment, field))
	})
	t.Run(`department label is exact match only`, func(t *testing.T) {
		exact := models.FieldDef{Key: "dep", Label: " Department ", Type: models.FieldTypeText}
		require.True(t, Matches(ColumnDepartment, exact))
		partial := models.FieldDef{Key: "dep", Label: "Department Head", Type: models.FieldTypeText}
		require.False(t, Matches(ColumnDepartment, partial))
	})
	t.Run(`status label containment`, func(t *testing.T) {
		field := models.FieldDef{Key: "status_custom", Label: "Delivery Status", Type: models.FieldTypeText}
		require.True(t, Matches(ColumnStatus, field))
	})
	t.Run(`company synonyms`, func(t *testing.T) {
		require.True(t, Matches(ColumnCompany, models.FieldDef{Key: "company_name", Label: "X", Type: models.FieldTypeText}))
		require.True(t, Matches(ColumnCompany, models.FieldDef{Key: "x", Label: "Parent company", Type: models.FieldTypeText}))
		require.False(t, Matches(ColumnCompany, models.FieldDef{Key: "x", Label: "X", Type: models.FieldTypeText}))
	})
}

func TestNormalizeFields(t *testing.T) {
	t.Run(`key derived from label`, func(t *testing.T) {
		fields, err := NormalizeFields(models.FieldList{
			{Label: "Full Name", Required: true},
		})
		require.Nil(t, err)
		require.Len(t, fields, 1)
		require.Equal(t, "full_name", fields[0].Key)
		require.Equal(t, models.FieldTypeText, fields[0].Type)
	})
	t.Run(`blank fields dropped`, func(t *testing.T) {
		fields, err := NormalizeFields(models.FieldList{
			{Label: "Name"},
			{Label: "   "},
			{Key: "orphan"},
		})
		require.Nil(t, err)
		require.Len(t, fields, 1)
	})
	t.Run(`duplicate key upserts first`, func(t *testing.T) {
		fields, err := NormalizeFields(models.FieldList{
			{Key: "status", Label: "Status", Type: models.FieldTypeText},
			{Key: "name", Label: "Name"},
			{Key: "STATUS", Label: "Status 2", Type: models.FieldTypeStatusSelect},
		})
		require.Nil(t, err)
		require.Len(t, fields, 2)
		require.Equal(t, "Status 2", fields[0].Label)
		require.Equal(t, models.FieldTypeStatusSelect, fields[0].Type)
	})
	t.Run(`empty template rejected`, func(t *testing.T) {
		_, err := NormalizeFields(models.FieldList{{Label: " "}})
		require.NotNil(t, err)
	})
	t.Run(`field limit enforced`, func(t *testing.T) {
		fields := make(models.FieldList, 0, models.MaxTemplateFields+1)
		for i := 0; i <= models.MaxTemplateFields; i++ {
			fields = append(fields, models.FieldDef{Key: Slugify("f" + string(rune('a'+i))), Label: "F"})
		}
		_, err := NormalizeFields(fields)
		require.NotNil(t, err)
	})
}

func TestValidateTemplate(t *testing.T) {
	fields := models.FieldList{{Key: "full_name", Label: "Full Name", Required: true}}

	t.Run(`routing needs department`, func(t *testing.T) {
		_, _, err := ValidateTemplate("T", fields, models.RequestSettings{Enabled: true})
		require.NotNil(t, err)
	})
	t.Run(`default department is enough`, func(t *testing.T) {
		_, settings, err := ValidateTemplate("T", fields, models.RequestSettings{Enabled: true, DepartmentID: "dep-1"})
		require.Nil(t, err)
		require.Equal(t, models.RequestPriorityMedium, settings.Priority)
	})
	t.Run(`department column binds field key`, func(t *testing.T) {
		withDep := append(models.FieldList{}, fields...)
		withDep = append(withDep, models.FieldDef{Key: "department_id", Label: "Department", Type: models.FieldTypeDepartmentSelect})
		_, settings, err := ValidateTemplate("T", withDep, models.RequestSettings{Enabled: true})
		require.Nil(t, err)
		require.Equal(t, "department_id", settings.DepartmentFieldKey)
	})
	t.Run(`blank name rejected`, func(t *testing.T) {
		_, _, err := ValidateTemplate("  ", fields, models.RequestSettings{})
		require.NotNil(t, err)
	})
}

func TestEnsureColumn(t *testing.T) {
	t.Run(`adds canonical field`, func(t *testing.T) {
		fields, added, err := EnsureColumn(ColumnStatus, models.FieldList{{Key: "name", Label: "Name"}})
		require.Nil(t, err)
		require.Len(t, fields, 2)
		require.Equal(t, "status", added.Key)
		require.Equal(t, models.FieldTypeStatusSelect, added.Type)
	})
	t.Run(`updates existing by key`, func(t *testing.T) {
		fields, added, err := EnsureColumn(ColumnPriority, models.FieldList{{Key: "priority", Label: "Prio", Type: models.FieldTypeText}})
		require.Nil(t, err)
		require.Len(t, fields, 1)
		require.Equal(t, models.FieldTypePrioritySelect, added.Type)
		require.Equal(t, "Priority", added.Label)
	})
	t.Run(`department column is required`, func(t *testing.T) {
		_, added, err := EnsureColumn(ColumnDepartment, models.FieldList{})
		require.Nil(t, err)
		require.True(t, added.Required)
	})
}

func TestRemoveColumn(t *testing.T) {
	t.Run(`synonym matched column removed exactly`, func(t *testing.T) {
		fields := models.FieldList{
			{Key: "name", Label: "Name"},
			{Key: "status_custom", Label: "Status", Type: models.FieldTypeText},
			{Key: "other", Label: "Other"},
		}
		result, removed, ok := RemoveColumn(ColumnStatus, fields)
		require.True(t, ok)
		require.Equal(t, "status_custom", removed.Key)
		require.Len(t, result, 2)
		require.Equal(t, "name", result[0].Key)
		require.Equal(t, "other", result[1].Key)
	})
	t.Run(`no match`, func(t *testing.T) {
		fields := models.FieldList{{Key: "name", Label: "Name"}}
		_, _, ok := RemoveColumn(ColumnClient, fields)
		require.False(t, ok)
	})
}
