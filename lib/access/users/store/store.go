package store

import (
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.WorkspaceUser) (string, error)
	Update(workspaceID, userID string, updMap map[string]interface{}) error
	Delete(workspaceID, userID string) error
	GetList(workspaceID string, departmentID string, page, limit int) (userList []dbmodels.WorkspaceUser, err error)
	GetByID(userID string) (rec *dbmodels.WorkspaceUser, err error)
	FindByEmail(email string) (rec *dbmodels.WorkspaceUser, err error)
	ExistByEmail(email string) (bool, error)
	GetByDepartment(workspaceID, departmentID string) (userList []dbmodels.WorkspaceUser, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkspaceUser) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(workspaceID, userID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.WorkspaceUser{}).
		Where("id = ?", userID).
		Where("workspace_id = ?", workspaceID).
		Updates(updMap).
		Error
}

func (i impl) Delete(workspaceID, userID string) error {
	return i.db.
		Where("id = ?", userID).
		Where("workspace_id = ?", workspaceID).
		Delete(&dbmodels.WorkspaceUser{}).
		Error
}

func (i impl) GetList(workspaceID string, departmentID string, page, limit int) (userList []dbmodels.WorkspaceUser, err error) {
	tx := i.db.Model(dbmodels.WorkspaceUser{}).
		Where("workspace_id = ?", workspaceID)
	if departmentID != "" {
		tx = tx.Where("department_id = ?", departmentID)
	}
	offset := (page - 1) * limit
	err = tx.
		Preload(clause.Associations).
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&userList).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userList, nil
}

func (i impl) GetByID(userID string) (rec *dbmodels.WorkspaceUser, err error) {
	err = i.db.Model(dbmodels.WorkspaceUser{}).
		Where("id = ?", userID).
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

func (i impl) FindByEmail(email string) (rec *dbmodels.WorkspaceUser, err error) {
	err = i.db.Model(dbmodels.WorkspaceUser{}).
		Where("email = ?", email).
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

func (i impl) ExistByEmail(email string) (bool, error) {
	err := i.db.
		Where("email = ?", email).
		First(&dbmodels.WorkspaceUser{}).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (i impl) GetByDepartment(workspaceID, departmentID string) (userList []dbmodels.WorkspaceUser, err error) {
	err = i.db.Model(dbmodels.WorkspaceUser{}).
		Where("workspace_id = ?", workspaceID).
		Where("department_id = ?", departmentID).
		Find(&userList).
		Error
	if err != nil {
		return nil, err
	}
	return userList, nil
}
