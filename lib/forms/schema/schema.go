package schema

import (
	"regexp"
	"strings"

	"crm-backend/models"

	"github.com/pkg/errors"
)

// ColumnKind это смысловая роль специальной колонки шаблона.
// Колонка распознаётся по явному типу, каноническому ключу или подстроке
// в названии, чтобы старые шаблоны с текстовыми полями продолжали работать.
type ColumnKind string

const (
	ColumnDepartment ColumnKind = "department"
	ColumnStatus     ColumnKind = "status"
	ColumnPriority   ColumnKind = "priority"
	ColumnCompany    ColumnKind = "company"
	ColumnClient     ColumnKind = "client"
)

type columnRule struct {
	fieldType     models.FieldType
	keys          []string
	labelExact    []string
	labelContains string
	canonical     models.FieldDef
}

var columnRules = map[ColumnKind]columnRule{
	ColumnDepartment: {
		fieldType:  models.FieldTypeDepartmentSelect,
		keys:       []string{"department_id"},
		labelExact: []string{"department"},
		canonical:  models.FieldDef{Key: "department_id", Label: "Department", Type: models.FieldTypeDepartmentSelect, Required: true},
	},
	ColumnStatus: {
		fieldType:     models.FieldTypeStatusSelect,
		keys:          []string{"status"},
		labelContains: "status",
		canonical:     models.FieldDef{Key: "status", Label: "Status", Type: models.FieldTypeStatusSelect},
	},
	ColumnPriority: {
		fieldType:     models.FieldTypePrioritySelect,
		keys:          []string{"priority"},
		labelContains: "priority",
		canonical:     models.FieldDef{Key: "priority", Label: "Priority", Type: models.FieldTypePrioritySelect},
	},
	ColumnCompany: {
		fieldType:     models.FieldTypeCompanySelect,
		keys:          []string{"company", "company_name"},
		labelContains: "company",
		canonical:     models.FieldDef{Key: "company", Label: "Company", Type: models.FieldTypeCompanySelect},
	},
	ColumnClient: {
		fieldType:     models.FieldTypeClientSelect,
		keys:          []string{"client", "client_name"},
		labelContains: "client",
		canonical:     models.FieldDef{Key: "client", Label: "Client", Type: models.FieldTypeClientSelect},
	},
}

func normalizeText(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

var slugCleanup = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify строит ключ поля из его названия.
func Slugify(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	key = slugCleanup.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

// Matches проверяет поле по трём правилам роли: тип, ключ, название.
func Matches(kind ColumnKind, field models.FieldDef) bool {
	rule, ok := columnRules[kind]
	if !ok {
		return false
	}
	if field.Type == rule.fieldType {
		return true
	}
	key := normalizeText(field.Key)
	for _, k := range rule.keys {
		if key == k {
			return true
		}
	}
	label := normalizeText(field.Label)
	for _, l := range rule.labelExact {
		if label == l {
			return true
		}
	}
	if rule.labelContains != "" && strings.Contains(label, rule.labelContains) {
		return true
	}
	return false
}

// FindColumn возвращает индекс первого поля указанной роли.
func FindColumn(kind ColumnKind, fields models.FieldList) (int, bool) {
	for i, field := range fields {
		if Matches(kind, field) {
			return i, true
		}
	}
	return -1, false
}

// DepartmentField возвращает поле маршрутизации по отделу, если оно есть.
// При отправке оно имеет приоритет над отделом из настроек шаблона.
func DepartmentField(fields models.FieldList) (models.FieldDef, bool) {
	idx, ok := FindColumn(ColumnDepartment, fields)
	if !ok {
		return models.FieldDef{}, false
	}
	return fields[idx], true
}

// CanonicalField возвращает каноническое определение колонки роли.
func CanonicalField(kind ColumnKind) (models.FieldDef, bool) {
	rule, ok := columnRules[kind]
	if !ok {
		return models.FieldDef{}, false
	}
	return rule.canonical, true
}

// NormalizeFields чистит список полей перед сохранением шаблона.
// Пустые поля отбрасываются, ключ выводится из названия, повторное
// определение ключа обновляет первое вместо дублирования.
func NormalizeFields(fields models.FieldList) (models.FieldList, error) {
	result := make(models.FieldList, 0, len(fields))
	index := map[string]int{}
	for _, field := range fields {
		field.Label = strings.TrimSpace(field.Label)
		field.Key = strings.TrimSpace(field.Key)
		if field.Key == "" {
			field.Key = Slugify(field.Label)
		}
		if field.Key == "" || field.Label == "" {
			continue
		}
		field.Type = models.ParseFieldType(string(field.Type))
		keyLower := strings.ToLower(field.Key)
		if pos, exist := index[keyLower]; exist {
			result[pos] = field
			continue
		}
		index[keyLower] = len(result)
		result = append(result, field)
	}
	if len(result) == 0 {
		return nil, errors.New("в шаблоне нет ни одного заполненного поля")
	}
	if len(result) > models.MaxTemplateFields {
		return nil, errors.Errorf("превышен лимит полей шаблона (%v)", models.MaxTemplateFields)
	}
	return result, nil
}

// ValidateTemplate проверяет шаблон целиком и возвращает нормализованные
// поля вместе с настройками маршрутизации, дополненными ключом поля отдела.
func ValidateTemplate(name string, fields models.FieldList, settings models.RequestSettings) (models.FieldList, models.RequestSettings, error) {
	if strings.TrimSpace(name) == "" {
		return nil, settings, errors.New("не указано название шаблона")
	}
	normalized, err := NormalizeFields(fields)
	if err != nil {
		return nil, settings, err
	}
	settings.DepartmentFieldKey = ""
	if depField, ok := DepartmentField(normalized); ok {
		settings.DepartmentFieldKey = depField.Key
	}
	if settings.Enabled && settings.DepartmentID == "" && settings.DepartmentFieldKey == "" {
		return nil, settings, errors.New("укажите отдел по умолчанию или добавьте колонку отдела")
	}
	settings.Priority = models.ParseRequestPriority(string(settings.Priority))
	return normalized, settings, nil
}

// EnsureColumn добавляет каноническую колонку роли или обновляет уже
// существующее поле с тем же ключом.
func EnsureColumn(kind ColumnKind, fields models.FieldList) (models.FieldList, models.FieldDef, error) {
	canonical, ok := CanonicalField(kind)
	if !ok {
		return fields, models.FieldDef{}, errors.Errorf("неизвестная колонка (%v)", kind)
	}
	keyLower := strings.ToLower(canonical.Key)
	for i, field := range fields {
		if strings.ToLower(field.Key) == keyLower {
			field.Label = canonical.Label
			field.Type = canonical.Type
			if canonical.Required {
				field.Required = true
			}
			fields[i] = field
			return fields, field, nil
		}
	}
	if len(fields) >= models.MaxTemplateFields {
		return fields, models.FieldDef{}, errors.Errorf("превышен лимит полей шаблона (%v)", models.MaxTemplateFields)
	}
	fields = append(fields, canonical)
	return fields, canonical, nil
}

// RemoveColumn удаляет первое поле, подходящее под роль, и возвращает его.
// Сначала ищется точное совпадение ключа или названия, затем синонимы.
func RemoveColumn(kind ColumnKind, fields models.FieldList) (models.FieldList, models.FieldDef, bool) {
	canonical, ok := CanonicalField(kind)
	if !ok {
		return fields, models.FieldDef{}, false
	}
	keyLower := strings.ToLower(canonical.Key)
	idx := -1
	for i, field := range fields {
		if strings.ToLower(field.Key) == keyLower || normalizeText(field.Label) == keyLower {
			idx = i
			break
		}
	}
	if idx == -1 {
		idx, ok = FindColumn(kind, fields)
		if !ok {
			return fields, models.FieldDef{}, false
		}
	}
	removed := fields[idx]
	result := make(models.FieldList, 0, len(fields)-1)
	result = append(result, fields[:idx]...)
	result = append(result, fields[idx+1:]...)
	return result, removed, true
}
