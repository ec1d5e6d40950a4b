package store

import (
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.FileStorage) (id string, err error)
	GetByID(workspaceID, id string) (rec *dbmodels.FileStorage, err error)
	ListByRequest(workspaceID, requestID string) (list []dbmodels.FileStorage, err error)
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

func (i impl) Create(rec dbmodels.FileStorage) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(workspaceID, id string) (rec *dbmodels.FileStorage, err error) {
	err = i.db.Model(dbmodels.FileStorage{}).
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

func (i impl) ListByRequest(workspaceID, requestID string) (list []dbmodels.FileStorage, err error) {
	list = []dbmodels.FileStorage{}
	err = i.db.Model(dbmodels.FileStorage{}).
		Where("workspace_id = ?", workspaceID).
		Where("request_id = ?", requestID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(workspaceID, id string) error {
	return i.db.
		Where("id = ?", id).
		Where("workspace_id = ?", workspaceID).
		Delete(&dbmodels.FileStorage{}).
		Error
}
