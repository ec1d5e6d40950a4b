package store

import (
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.FormTemplate) (id string, err error)
	GetByID(workspaceID, id string) (rec *dbmodels.FormTemplate, err error)
	List(workspaceID string, limit, offset int) (list []dbmodels.FormTemplate, err error)
	Update(workspaceID, id string, updMap map[string]interface{}) error
	Delete(workspaceID, id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.FormTemplate) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(workspaceID, id string) (rec *dbmodels.FormTemplate, err error) {
	err = i.db.Model(dbmodels.FormTemplate{}).
		Where("id = ?", id).
		Where("workspace_id = ?", workspaceID).
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

func (i impl) List(workspaceID string, limit, offset int) (list []dbmodels.FormTemplate, err error) {
	list = []dbmodels.FormTemplate{}
	err = i.db.Model(dbmodels.FormTemplate{}).
		Where("workspace_id = ?", workspaceID).
		Order("name").
		Limit(limit).
		Offset(offset).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(workspaceID, id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.FormTemplate{}).
		Where("id = ?", id).
		Where("workspace_id = ?", workspaceID).
		Updates(updMap).
		Error
}

func (i impl) Delete(workspaceID, id string) error {
	return i.db.
		Where("id = ?", id).
		Where("workspace_id = ?", workspaceID).
		Delete(&dbmodels.FormTemplate{}).
		Error
}
