package dbmodels

import "crm-backend/models"

// FormRecord это одна заполненная строка шаблона.
// RequestID заполняется при создании, если шаблон маршрутизирует заявки (связь 1:1)
type FormRecord struct {
	BaseModel
	TemplateID  string          `gorm:"type:varchar(36);index"`
	Template    *FormTemplate   `gorm:"foreignKey:TemplateID"`
	RequestID   *string         `gorm:"type:varchar(36);index"`
	CreatedByID string          `gorm:"type:varchar(36);index"`
	EntryData   models.EntryData `gorm:"type:jsonb"`
	Meta        models.MetaData  `gorm:"type:jsonb"`
}

// LinkedRequestID возвращает заявку, созданную по этой записи.
// Колонка считается первичным источником, метаданные оставлены для
// записей, сохранённых до её появления.
func (r FormRecord) LinkedRequestID() string {
	if r.RequestID != nil && *r.RequestID != "" {
		return *r.RequestID
	}
	return r.Meta[models.MetaKeyRequestID]
}
