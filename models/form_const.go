package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// FieldType это закрытый набор типов колонок шаблона.
// Новый тип добавляется здесь и в switch-ах обработки (submit, schema, queue)
type FieldType string

const (
	FieldTypeText             FieldType = "text"
	FieldTypeNumber           FieldType = "number"
	FieldTypeBoolean          FieldType = "boolean"
	FieldTypeDate             FieldType = "date"
	FieldTypeDepartmentSelect FieldType = "department_select"
	FieldTypeStatusSelect     FieldType = "status_select"
	FieldTypePrioritySelect   FieldType = "priority_select"
	FieldTypeCompanySelect    FieldType = "company_select"
	FieldTypeClientSelect     FieldType = "client_select"
)

var fieldTypes = map[FieldType]bool{
	FieldTypeText:             true,
	FieldTypeNumber:           true,
	FieldTypeBoolean:          true,
	FieldTypeDate:             true,
	FieldTypeDepartmentSelect: true,
	FieldTypeStatusSelect:     true,
	FieldTypePrioritySelect:   true,
	FieldTypeCompanySelect:    true,
	FieldTypeClientSelect:     true,
}

// ParseFieldType: неизвестный тип трактуется как text,
// исторические шаблоны хранят произвольные строки
func ParseFieldType(value string) FieldType {
	fieldType := FieldType(strings.ToLower(strings.TrimSpace(value)))
	if fieldTypes[fieldType] {
		return fieldType
	}
	return FieldTypeText
}

// FieldDef это описание одной колонки шаблона
type FieldDef struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
}

// MaxTemplateFields задаёт ограничение на число колонок шаблона
const MaxTemplateFields = 20

// FieldList хранится в jsonb, порядок колонок значим
type FieldList []FieldDef

func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		l = FieldList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сериализации списка колонок")
	}
	return string(data), nil
}

func (l *FieldList) Scan(value interface{}) error {
	if value == nil {
		*l = FieldList{}
		return nil
	}
	data, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, l)
}

// RequestSettings это настройки маршрутизации заявок шаблона
type RequestSettings struct {
	Enabled             bool            `json:"enabled"`
	DepartmentID        string          `json:"department_id,omitempty"`
	DepartmentFieldKey  string          `json:"department_field_key,omitempty"`
	Priority            RequestPriority `json:"priority,omitempty"`
	TitleTemplate       string          `json:"title_template,omitempty"`
	DescriptionTemplate string          `json:"description_template,omitempty"`
}

func (s RequestSettings) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сериализации настроек заявок")
	}
	return string(data), nil
}

func (s *RequestSettings) Scan(value interface{}) error {
	if value == nil {
		*s = RequestSettings{}
		return nil
	}
	data, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, s)
}

// EntryData хранит значения заполненной строки шаблона по key колонки
type EntryData map[string]interface{}

func (d EntryData) Value() (driver.Value, error) {
	if d == nil {
		d = EntryData{}
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сериализации данных строки")
	}
	return string(data), nil
}

func (d *EntryData) Scan(value interface{}) error {
	if value == nil {
		*d = EntryData{}
		return nil
	}
	data, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, d)
}

// MetaData это служебные метаданные записи/заявки (перекрёстные ссылки, done_at)
type MetaData map[string]string

func (m MetaData) Value() (driver.Value, error) {
	if m == nil {
		m = MetaData{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сериализации метаданных")
	}
	return string(data), nil
}

func (m *MetaData) Scan(value interface{}) error {
	if value == nil {
		*m = MetaData{}
		return nil
	}
	data, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, m)
}

func jsonbBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.Errorf("неподдерживаемый тип jsonb значения: %T", value)
	}
}
