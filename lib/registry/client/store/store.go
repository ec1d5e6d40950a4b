package store

import (
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Client) (id string, err error)
	GetByID(workspaceID, id string) (rec *dbmodels.Client, err error)
	List(workspaceID, query, companyID string, limit, offset int) (list []dbmodels.Client, err error)
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

func (i impl) Create(rec dbmodels.Client) (id string, err error) {
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

func (i impl) GetByID(workspaceID, id string) (*dbmodels.Client, error) {
	rec := dbmodels.Client{}
	err := i.db.
		Where("id = ?", id).
		Where("workspace_id = ?", workspaceID).
		Preload(clause.Associations).
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

func (i impl) List(workspaceID, query, companyID string, limit, offset int) (list []dbmodels.Client, err error) {
	list = []dbmodels.Client{}
	tx := i.db.
		Where("workspace_id = ?", workspaceID)
	if companyID != "" {
		tx = tx.Where("company_id = ?", companyID)
	}
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
	}
	err = tx.
		Preload(clause.Associations).
		Order("last_name, first_name").
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
		Model(&dbmodels.Client{}).
		Where("id = ?", id).
		Where("workspace_id = ?", workspaceID).
		Updates(updMap).
		Error
}

func (i impl) Delete(workspaceID, id string) error {
	return i.db.
		Where("id = ?", id).
		Where("workspace_id = ?", workspaceID).
		Delete(&dbmodels.Client{}).
		Error
}
