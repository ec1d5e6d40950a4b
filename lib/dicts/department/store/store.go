package store

import (
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Department) (id string, err error)
	GetByID(workspaceID, id string) (rec *dbmodels.Department, err error)
	List(workspaceID string, limit, offset int) (list []dbmodels.Department, err error)
	Update(workspaceID, id string, updMap map[string]interface{}) error
	Delete(workspaceID, id string) error
	HasRequests(id string) (bool, error)
	HasUsers(id string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Department) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.isUnique(rec.WorkspaceID, "", rec.Name)
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

func (i impl) GetByID(workspaceID, id string) (*dbmodels.Department, error) {
	rec := dbmodels.Department{}
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

func (i impl) List(workspaceID string, limit, offset int) (list []dbmodels.Department, err error) {
	list = []dbmodels.Department{}
	err = i.db.
		Where("workspace_id = ?", workspaceID).
		Order("created_at").
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
	name, ok := updMap["name"]
	if ok {
		err := i.isUnique(workspaceID, id, name.(string))
		if err != nil {
			return err
		}
	}
	return i.db.
		Model(&dbmodels.Department{}).
		Where("id = ?", id).
		Where("workspace_id = ?", workspaceID).
		Updates(updMap).
		Error
}

func (i impl) Delete(workspaceID, id string) error {
	rec := dbmodels.Department{
		BaseWorkspaceModel: dbmodels.BaseWorkspaceModel{
			BaseModel: dbmodels.BaseModel{
				ID: id,
			},
			WorkspaceID: workspaceID,
		},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) HasRequests(id string) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(dbmodels.Request{}).
		Where("department_id = ?", id).
		Count(&rowCount).
		Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки заявок подразделения")
	}
	return rowCount != 0, nil
}

func (i impl) HasUsers(id string) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(dbmodels.WorkspaceUser{}).
		Where("department_id = ?", id).
		Count(&rowCount).
		Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки сотрудников подразделения")
	}
	return rowCount != 0, nil
}

func (i impl) isUnique(workspaceID, selfID, name string) error {
	var rowCount int64
	tx := i.db.Model(dbmodels.Department{})
	tx.Where("workspace_id = ?", workspaceID)
	tx.Where("name = ?", name)
	if selfID != "" {
		tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return errors.Wrap(err, "ошибка проверки уникальности подразделения")
	}
	if rowCount != 0 {
		return errors.New("подразделение уже существует")
	}
	return nil
}
