package recordstore

import (
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter задаёт выборку записей шаблона.
type Filter struct {
	TemplateID  string
	CreatedByID string
	Limit       int
	Offset      int
}

type Provider interface {
	Create(rec dbmodels.FormRecord) (id string, err error)
	GetByID(id string) (rec *dbmodels.FormRecord, err error)
	GetByRequestID(requestID string) (rec *dbmodels.FormRecord, err error)
	List(filter Filter) (list []dbmodels.FormRecord, rowCount int64, err error)
	ListAll(templateID string) (list []dbmodels.FormRecord, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	CountByTemplate(templateID string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.FormRecord) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (rec *dbmodels.FormRecord, err error) {
	err = i.db.Model(dbmodels.FormRecord{}).
		Where("id = ?", id).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) GetByRequestID(requestID string) (rec *dbmodels.FormRecord, err error) {
	err = i.db.Model(dbmodels.FormRecord{}).
		Where("request_id = ?", requestID).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) List(filter Filter) (list []dbmodels.FormRecord, rowCount int64, err error) {
	list = []dbmodels.FormRecord{}
	tx := i.db.Model(dbmodels.FormRecord{}).
		Where("template_id = ?", filter.TemplateID)
	if filter.CreatedByID != "" {
		tx = tx.Where("created_by_id = ?", filter.CreatedByID)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("created_at desc").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

// ListAll отдаёт записи шаблона в порядке создания, без пагинации.
// Используется при выгрузке.
func (i impl) ListAll(templateID string) (list []dbmodels.FormRecord, err error) {
	list = []dbmodels.FormRecord{}
	err = i.db.Model(dbmodels.FormRecord{}).
		Where("template_id = ?", templateID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.FormRecord{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.FormRecord{}).
		Error
}

func (i impl) CountByTemplate(templateID string) (count int64, err error) {
	err = i.db.Model(dbmodels.FormRecord{}).
		Where("template_id = ?", templateID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
