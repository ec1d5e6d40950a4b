package clientprovider

import (
	"crm-backend/db"
	"crm-backend/lib/registry/client/store"
	companyprovider "crm-backend/lib/registry/company"
	initchecker "crm-backend/lib/utils/init-checker"
	apimodels "crm-backend/models/api"
	registryapimodels "crm-backend/models/api/registry"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(workspaceID string, request registryapimodels.ClientData) (id string, err error)
	Update(workspaceID, id string, request registryapimodels.ClientData) error
	Get(workspaceID, id string) (item registryapimodels.ClientView, err error)
	List(workspaceID, query, companyID string, pagination apimodels.Pagination) (list []registryapimodels.ClientView, err error)
	Delete(workspaceID, id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:   store.NewInstance(db.DB),
		company: companyprovider.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"company", instance.company,
	)
	Instance = instance
}

type impl struct {
	store   store.Provider
	company companyprovider.Provider
}

func (i impl) Create(workspaceID string, request registryapimodels.ClientData) (id string, err error) {
	if request.CompanyID != "" {
		if _, err = i.company.Get(workspaceID, request.CompanyID); err != nil {
			return "", err
		}
	}
	rec := dbmodels.Client{
		BaseWorkspaceModel: dbmodels.BaseWorkspaceModel{
			WorkspaceID: workspaceID,
		},
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Phone:     request.Phone,
		Notes:     request.Notes,
	}
	if request.CompanyID != "" {
		rec.CompanyID = &request.CompanyID
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("workspace_id", workspaceID).
		WithField("rec_id", id).
		Info("создан клиент")
	return id, nil
}

func (i impl) Update(workspaceID, id string, request registryapimodels.ClientData) error {
	updMap := map[string]interface{}{
		"first_name": request.FirstName,
		"last_name":  request.LastName,
		"email":      request.Email,
		"phone":      request.Phone,
		"notes":      request.Notes,
	}
	if request.CompanyID != "" {
		if _, err := i.company.Get(workspaceID, request.CompanyID); err != nil {
			return err
		}
		updMap["company_id"] = request.CompanyID
	} else {
		updMap["company_id"] = nil
	}
	return i.store.Update(workspaceID, id, updMap)
}

func (i impl) Get(workspaceID, id string) (item registryapimodels.ClientView, err error) {
	rec, err := i.store.GetByID(workspaceID, id)
	if err != nil {
		return registryapimodels.ClientView{}, err
	}
	if rec == nil {
		return registryapimodels.ClientView{}, errors.New("клиент не найден")
	}
	return registryapimodels.ClientConvert(*rec), nil
}

func (i impl) List(workspaceID, query, companyID string, pagination apimodels.Pagination) (list []registryapimodels.ClientView, err error) {
	page, limit := pagination.GetPage()
	recList, err := i.store.List(workspaceID, query, companyID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	list = make([]registryapimodels.ClientView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, registryapimodels.ClientConvert(rec))
	}
	return list, nil
}

func (i impl) Delete(workspaceID, id string) error {
	err := i.store.Delete(workspaceID, id)
	if err != nil {
		return err
	}
	log.
		WithField("workspace_id", workspaceID).
		WithField("rec_id", id).
		Info("удалён клиент")
	return nil
}
