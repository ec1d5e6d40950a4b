package companyprovider

import (
	"crm-backend/db"
	"crm-backend/lib/registry/company/store"
	apimodels "crm-backend/models/api"
	registryapimodels "crm-backend/models/api/registry"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(workspaceID string, request registryapimodels.CompanyData) (id string, err error)
	Update(workspaceID, id string, request registryapimodels.CompanyData) error
	Get(workspaceID, id string) (item registryapimodels.CompanyView, err error)
	List(workspaceID, query string, pagination apimodels.Pagination) (list []registryapimodels.CompanyView, err error)
	Delete(workspaceID, id string) error
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

func (i impl) Create(workspaceID string, request registryapimodels.CompanyData) (id string, err error) {
	rec := dbmodels.Company{
		BaseWorkspaceModel: dbmodels.BaseWorkspaceModel{
			WorkspaceID: workspaceID,
		},
		Name:               request.Name,
		RegistrationNumber: request.RegistrationNumber,
		Email:              request.Email,
		Phone:              request.Phone,
		Address:            request.Address,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("workspace_id", workspaceID).
		WithField("rec_id", id).
		Info("создана компания")
	return id, nil
}

func (i impl) Update(workspaceID, id string, request registryapimodels.CompanyData) error {
	updMap := map[string]interface{}{
		"name":                request.Name,
		"registration_number": request.RegistrationNumber,
		"email":               request.Email,
		"phone":               request.Phone,
		"address":             request.Address,
	}
	return i.store.Update(workspaceID, id, updMap)
}

func (i impl) Get(workspaceID, id string) (item registryapimodels.CompanyView, err error) {
	rec, err := i.store.GetByID(workspaceID, id)
	if err != nil {
		return registryapimodels.CompanyView{}, err
	}
	if rec == nil {
		return registryapimodels.CompanyView{}, errors.New("компания не найдена")
	}
	return registryapimodels.CompanyConvert(*rec), nil
}

func (i impl) List(workspaceID, query string, pagination apimodels.Pagination) (list []registryapimodels.CompanyView, err error) {
	page, limit := pagination.GetPage()
	recList, err := i.store.List(workspaceID, query, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	list = make([]registryapimodels.CompanyView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, registryapimodels.CompanyConvert(rec))
	}
	return list, nil
}

func (i impl) Delete(workspaceID, id string) error {
	hasClients, err := i.store.HasClients(id)
	if err != nil {
		return err
	}
	if hasClients {
		return errors.New("нельзя удалить компанию с клиентами")
	}
	err = i.store.Delete(workspaceID, id)
	if err != nil {
		return err
	}
	log.
		WithField("workspace_id", workspaceID).
		WithField("rec_id", id).
		Info("удалена компания")
	return nil
}
