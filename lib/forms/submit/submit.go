package submit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	formsschema "crm-backend/lib/forms/schema"
	"crm-backend/models"

	"github.com/pkg/errors"
)

// ValidationError привязывает ошибку к конкретному полю строки.
type ValidationError struct {
	Field  string
	Label  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("поле \"%v\" обязательно для заполнения", e.Label)
}

// RowDefaults строит пустую строку для заполнения шаблона.
func RowDefaults(fields models.FieldList, submitterDepartmentID, firstDepartmentID string) models.EntryData {
	row := models.EntryData{}
	for _, field := range fields {
		switch {
		case field.Type == models.FieldTypeBoolean:
			row[field.Key] = false
		case formsschema.Matches(formsschema.ColumnStatus, field):
			row[field.Key] = string(models.RequestStatuses[0])
		case formsschema.Matches(formsschema.ColumnPriority, field):
			row[field.Key] = string(models.RequestPriorityMedium)
		case formsschema.Matches(formsschema.ColumnDepartment, field):
			if submitterDepartmentID != "" {
				row[field.Key] = submitterDepartmentID
			} else {
				row[field.Key] = firstDepartmentID
			}
		default:
			row[field.Key] = ""
		}
	}
	return row
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

// ValidateRow проверяет обязательные поля до любых сетевых вызовов.
// Пустые необязательные значения допустимы.
func ValidateRow(fields models.FieldList, row models.EntryData) error {
	for _, field := range fields {
		if !field.Required {
			continue
		}
		if isEmpty(row[field.Key]) {
			return ValidationError{Field: field.Key, Label: field.Label, Reason: "required"}
		}
	}
	return nil
}

func toNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), !math.IsNaN(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(parsed) {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func toBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case nil:
		return false
	default:
		return true
	}
}

// CoerceRow приводит сырые значения строки к типам полей.
// Пустое число не попадает в результат вовсе, false для числа не подменяется.
func CoerceRow(fields models.FieldList, row models.EntryData, firstDepartmentID string) models.EntryData {
	data := models.EntryData{}
	for _, field := range fields {
		value := row[field.Key]
		switch field.Type {
		case models.FieldTypeNumber:
			num, ok := toNumber(value)
			if !ok {
				continue
			}
			data[field.Key] = num
			continue
		case models.FieldTypeBoolean:
			data[field.Key] = toBool(value)
			continue
		}
		if formsschema.Matches(formsschema.ColumnDepartment, field) && isEmpty(value) {
			if firstDepartmentID == "" {
				continue
			}
			data[field.Key] = firstDepartmentID
			continue
		}
		if s, ok := value.(string); ok {
			value = strings.TrimSpace(s)
		}
		if isEmpty(value) && !field.Required {
			continue
		}
		data[field.Key] = value
	}
	return data
}

// stringify приводит значение к строке для подстановки в шаблон текста.
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// RenderTemplate подставляет значения строки вместо плейсхолдеров {key}.
// Плейсхолдеры без значения остаются в тексте как есть.
func RenderTemplate(text string, row models.EntryData) string {
	rendered := text
	for key, value := range row {
		rendered = strings.ReplaceAll(rendered, "{"+key+"}", stringify(value))
	}
	return rendered
}

// DefaultDescription собирает описание заявки из всех полей строки.
func DefaultDescription(fields models.FieldList, row models.EntryData) string {
	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		label := field.Label
		if label == "" {
			label = field.Key
		}
		lines = append(lines, fmt.Sprintf("%v: %v", label, stringify(row[field.Key])))
	}
	return strings.Join(lines, "\n")
}

// RequestDraft это заготовка заявки, создаваемой по строке шаблона.
type RequestDraft struct {
	Title        string
	Description  string
	Priority     models.RequestPriority
	DepartmentID string
}

// BuildRequestDraft собирает заявку по настройкам маршрутизации.
// Отдел из поля строки имеет приоритет над отделом из настроек.
func BuildRequestDraft(templateName string, fields models.FieldList, settings models.RequestSettings, row models.EntryData) (RequestDraft, error) {
	departmentID := settings.DepartmentID
	if settings.DepartmentFieldKey != "" {
		if value, ok := row[settings.DepartmentFieldKey].(string); ok && value != "" {
			departmentID = value
		}
	}
	if departmentID == "" {
		return RequestDraft{}, errors.New("в настройках шаблона и данных строки не указан отдел")
	}

	titleTemplate := settings.TitleTemplate
	if titleTemplate == "" {
		titleTemplate = templateName
	}
	draft := RequestDraft{
		Title:        RenderTemplate(titleTemplate, row),
		Priority:     models.ParseRequestPriority(string(settings.Priority)),
		DepartmentID: departmentID,
	}
	if settings.DescriptionTemplate != "" {
		draft.Description = RenderTemplate(settings.DescriptionTemplate, row)
	} else {
		draft.Description = DefaultDescription(fields, row)
	}
	return draft, nil
}

// ProcessBatch обрабатывает строки последовательно и в исходном порядке.
// Это не транзакция: при ошибке на строке k строки 0..k-1 уже созданы
// и не откатываются, строки после k не отправляются.
func ProcessBatch(rows []models.EntryData, create func(row models.EntryData) error) (succeeded int, failedAt int, err error) {
	for i, row := range rows {
		if createErr := create(row); createErr != nil {
			return i, i, errors.Wrapf(createErr, "строка %v", i+1)
		}
	}
	return len(rows), -1, nil
}
