package departmentprovider

import (
	"crm-backend/db"
	"crm-backend/lib/dicts/department/store"
	apimodels "crm-backend/models/api"
	workflowapimodels "crm-backend/models/api/workflow"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(workspaceID string, request workflowapimodels.DepartmentData) (id string, err error)
	Update(workspaceID, id string, request workflowapimodels.DepartmentData) error
	Get(workspaceID, id string) (item workflowapimodels.DepartmentView, err error)
	List(workspaceID string, pagination apimodels.Pagination) (list []workflowapimodels.DepartmentView, err error)
	Delete(workspaceID, id string) error
	NameMap(workspaceID string) (map[string]string, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: store.NewInstance(db.DB),
	}
}

type impl struct {
	store store.Provider
}

func (i impl) Create(workspaceID string, request workflowapimodels.DepartmentData) (id string, err error) {
	logger := log.WithField("workspace_id", workspaceID)
	rec := dbmodels.Department{
		BaseWorkspaceModel: dbmodels.BaseWorkspaceModel{
			WorkspaceID: workspaceID,
		},
		Name:        request.Name,
		Description: request.Description,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("department_name", request.Name).
		WithField("rec_id", id).
		Info("создано подразделение")
	return id, nil
}

func (i impl) Update(workspaceID, id string, request workflowapimodels.DepartmentData) error {
	logger := log.WithField("workspace_id", workspaceID).
		WithField("rec_id", id)
	updMap := map[string]interface{}{
		"name":        request.Name,
		"description": request.Description,
	}
	err := i.store.Update(workspaceID, id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлено подразделение")
	return nil
}

func (i impl) Get(workspaceID, id string) (item workflowapimodels.DepartmentView, err error) {
	rec, err := i.store.GetByID(workspaceID, id)
	if err != nil {
		return workflowapimodels.DepartmentView{}, err
	}
	if rec == nil {
		return workflowapimodels.DepartmentView{}, errors.New("подразделение не найдено")
	}
	return workflowapimodels.DepartmentConvert(*rec), nil
}

func (i impl) List(workspaceID string, pagination apimodels.Pagination) (list []workflowapimodels.DepartmentView, err error) {
	page, limit := pagination.GetPage()
	recList, err := i.store.List(workspaceID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	list = make([]workflowapimodels.DepartmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, workflowapimodels.DepartmentConvert(rec))
	}
	return list, nil
}

func (i impl) Delete(workspaceID, id string) error {
	logger := log.WithField("workspace_id", workspaceID).
		WithField("rec_id", id)
	hasRequests, err := i.store.HasRequests(id)
	if err != nil {
		return err
	}
	if hasRequests {
		return errors.New("нельзя удалить подразделение с заявками")
	}
	hasUsers, err := i.store.HasUsers(id)
	if err != nil {
		return err
	}
	if hasUsers {
		return errors.New("нельзя удалить подразделение с сотрудниками")
	}
	err = i.store.Delete(workspaceID, id)
	if err != nil {
		return err
	}
	logger.Info("удалено подразделение")
	return nil
}

func (i impl) NameMap(workspaceID string) (map[string]string, error) {
	recList, err := i.store.List(workspaceID, 1000, 0)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(recList))
	for _, rec := range recList {
		result[rec.ID] = rec.Name
	}
	return result, nil
}
