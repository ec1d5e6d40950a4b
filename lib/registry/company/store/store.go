package store

import (
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Company) (id string, err error)
	GetByID(workspaceID, id string) (rec *dbmodels.Company, err error)
	List(workspaceID, query string, limit, offset int) (list []dbmodels.Company, err error)
	Update(workspaceID, id string, updMap map[string]interface{}) error
	Delete(workspaceID, id string) error
	HasClients(id string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Company) (id string, err error) {
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

func (i impl) GetByID(workspaceID, id string) (*dbmodels.Company, error) {
	rec := dbmodels.Company{}
	err := i.db.
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
	return &rec, nil
}

func (i impl) List(workspaceID, query string, limit, offset int) (list []dbmodels.Company, err error) {
	list = []dbmodels.Company{}
	tx := i.db.
		Where("workspace_id = ?", workspaceID)
	if query != "" {
		tx = tx.Where("name ILIKE ?", "%"+query+"%")
	}
	err = tx.
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
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Company{}).
		Where("id = ?", id).
		Where("workspace_id = ?", workspaceID).
		Updates(updMap).
		Error
}

func (i impl) Delete(workspaceID, id string) error {
	return i.db.
		Where("id = ?", id).
		Where("workspace_id = ?", workspaceID).
		Delete(&dbmodels.Company{}).
		Error
}

func (i impl) HasClients(id string) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(dbmodels.Client{}).
		Where("company_id = ?", id).
		Count(&rowCount).
		Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки клиентов компании")
	}
	return rowCount != 0, nil
}
