package store

import (
	"crm-backend/models"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter задаёт выборку заявок в хранилище.
type Filter struct {
	WorkspaceID  string
	DepartmentID string
	AssigneeID   string
	DoneOnly     bool

	// видимость для ролей без полного доступа
	ParticipantID       string
	OwnDepartmentID     string
	RestrictParticipant bool

	Limit  int
	Offset int
}

// StatusCount это агрегат числа заявок отдела в статусе.
type StatusCount struct {
	DepartmentID string
	Status       models.RequestStatus
	Count        int64
}

type Provider interface {
	Create(rec dbmodels.Request) (id string, err error)
	GetByID(workspaceID, id string) (rec *dbmodels.Request, err error)
	GetByIDs(ids []string) (list []dbmodels.Request, err error)
	List(filter Filter) (list []dbmodels.Request, rowCount int64, err error)
	Update(workspaceID, id string, updMap map[string]interface{}) error
	Delete(workspaceID, id string) error
	CountByDepartment(workspaceID string) (list []StatusCount, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Request) (id string, err error) {
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

func (i impl) GetByID(workspaceID, id string) (rec *dbmodels.Request, err error) {
	err = i.db.Model(dbmodels.Request{}).
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
	return rec, nil
}

func (i impl) GetByIDs(ids []string) (list []dbmodels.Request, err error) {
	list = []dbmodels.Request{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.Model(dbmodels.Request{}).
		Where("id IN ?", ids).
		Preload(clause.Associations).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) List(filter Filter) (list []dbmodels.Request, rowCount int64, err error) {
	list = []dbmodels.Request{}
	tx := i.db.Model(dbmodels.Request{}).
		Where("workspace_id = ?", filter.WorkspaceID)
	if filter.DoneOnly {
		tx = tx.Where("status = ?", models.RequestStatusDone)
	} else {
		tx = tx.Where("status <> ?", models.RequestStatusDone)
	}
	if filter.DepartmentID != "" {
		tx = tx.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.AssigneeID != "" {
		tx = tx.Where("assigned_to_id = ?", filter.AssigneeID)
	}
	if filter.RestrictParticipant {
		if filter.OwnDepartmentID != "" {
			tx = tx.Where("department_id = ? OR assigned_to_id = ? OR created_by_id = ?",
				filter.OwnDepartmentID, filter.ParticipantID, filter.ParticipantID)
		} else {
			tx = tx.Where("assigned_to_id = ? OR created_by_id = ?",
				filter.ParticipantID, filter.ParticipantID)
		}
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	err = tx.
		Preload(clause.Associations).
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

func (i impl) Update(workspaceID, id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Request{}).
		Where("id = ?", id).
		Where("workspace_id = ?", workspaceID).
		Updates(updMap).
		Error
}

func (i impl) CountByDepartment(workspaceID string) (list []StatusCount, err error) {
	list = []StatusCount{}
	err = i.db.Model(dbmodels.Request{}).
		Select("department_id, status, count(*) as count").
		Where("workspace_id = ?", workspaceID).
		Group("department_id, status").
		Scan(&list).
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
		Delete(&dbmodels.Request{}).
		Error
}
