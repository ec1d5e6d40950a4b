package usershandler

import (
	"fmt"

	"crm-backend/db"
	"crm-backend/lib/access/policy"
	"crm-backend/lib/access/users/store"
	authutils "crm-backend/lib/utils/auth-utils"
	"crm-backend/models"
	apimodels "crm-backend/models/api"
	accessapimodels "crm-backend/models/api/access"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	CreateUser(workspaceID string, actorRole models.UserRole, request accessapimodels.UserData) (id string, err error)
	UpdateUser(workspaceID, userID string, actorRole models.UserRole, request accessapimodels.UserData) error
	DeleteUser(workspaceID, userID string) error
	GetListUsers(workspaceID string, filter accessapimodels.UserFilter, pagination apimodels.Pagination) (usersList []accessapimodels.UserView, err error)
	GetByID(userID string) (user accessapimodels.UserView, err error)
	GetDepartmentUsers(workspaceID, departmentID string) (usersList []accessapimodels.UserView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		userStore: store.NewInstance(db.DB),
	}
}

type impl struct {
	userStore store.Provider
}

func (i impl) GetByID(userID string) (user accessapimodels.UserView, err error) {
	userDB, err := i.userStore.GetByID(userID)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка поиска пользователя")
		return accessapimodels.UserView{}, err
	}
	if userDB == nil {
		return accessapimodels.UserView{}, errors.New("пользователь не найден")
	}
	return userDB.ToModel(), nil
}

// роли, которые может выдавать руководитель при создании пользователя
func allowedRoleFor(actorRole models.UserRole, requested models.UserRole) error {
	if actorRole.Normalized() == models.UserRoleManager && !requested.In(policy.AssignableRoles...) {
		return errors.New("руководитель может создавать только обычных пользователей")
	}
	if requested.Rank() > actorRole.Rank() {
		return errors.New("нельзя выдать роль выше собственной")
	}
	return nil
}

func (i impl) CreateUser(workspaceID string, actorRole models.UserRole, request accessapimodels.UserData) (id string, err error) {
	role := models.NormalizeRole(request.Role)
	if err = allowedRoleFor(actorRole, role); err != nil {
		return "", err
	}
	userExist, err := i.userStore.ExistByEmail(request.Email)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("ошибка проверки уже существующего пользователя")
		return "", err
	}
	if userExist {
		return "", errors.New("пользователь с такой почтой уже существует")
	}
	if request.Password == "" {
		return "", errors.New("не указан пароль")
	}
	hash, err := authutils.HashPassword(request.Password)
	if err != nil {
		return "", err
	}
	rec := dbmodels.WorkspaceUser{
		BaseWorkspaceModel: dbmodels.BaseWorkspaceModel{
			WorkspaceID: workspaceID,
		},
		Password:  hash,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		IsActive:  true,
		Role:      role,
	}
	if request.DepartmentID != "" {
		rec.DepartmentID = &request.DepartmentID
	}
	id, err = i.userStore.Create(rec)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("ошибка создания пользователя")
		return "", err
	}
	log.
		WithField("workspace_id", workspaceID).
		WithField("user_id", id).
		Info("создан пользователь")
	return id, nil
}

func (i impl) UpdateUser(workspaceID, userID string, actorRole models.UserRole, request accessapimodels.UserData) error {
	role := models.NormalizeRole(request.Role)
	if err := allowedRoleFor(actorRole, role); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"first_name": request.FirstName,
		"last_name":  request.LastName,
		"email":      request.Email,
		"role":       string(role),
	}
	if request.Password != "" {
		hash, err := authutils.HashPassword(request.Password)
		if err != nil {
			return err
		}
		updMap["password"] = hash
	}
	if request.DepartmentID != "" {
		updMap["department_id"] = request.DepartmentID
	} else {
		updMap["department_id"] = nil
	}
	if request.IsActive != nil {
		updMap["is_active"] = *request.IsActive
	}
	err := i.userStore.Update(workspaceID, userID, updMap)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("ошибка обновления пользователя")
		return err
	}
	return nil
}

func (i impl) DeleteUser(workspaceID, userID string) error {
	err := i.userStore.Delete(workspaceID, userID)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка удаления пользователя")
		return err
	}
	log.
		WithField("user_id", userID).
		Info("удалён пользователь")
	return nil
}

func (i impl) GetListUsers(workspaceID string, filter accessapimodels.UserFilter, pagination apimodels.Pagination) (usersList []accessapimodels.UserView, err error) {
	page, limit := pagination.GetPage()
	recList, err := i.userStore.GetList(workspaceID, filter.DepartmentID, page, limit)
	if err != nil {
		return nil, err
	}
	usersList = make([]accessapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		usersList = append(usersList, rec.ToModel())
	}
	return usersList, nil
}

func (i impl) GetDepartmentUsers(workspaceID, departmentID string) (usersList []accessapimodels.UserView, err error) {
	recList, err := i.userStore.GetByDepartment(workspaceID, departmentID)
	if err != nil {
		return nil, err
	}
	usersList = make([]accessapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		usersList = append(usersList, rec.ToModel())
	}
	return usersList, nil
}
