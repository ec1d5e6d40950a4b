package workflowhandler

import (
	"context"
	"time"

	"crm-backend/db"
	"crm-backend/lib/access/policy"
	usersstore "crm-backend/lib/access/users/store"
	departmentprovider "crm-backend/lib/dicts/department"
	filestorage "crm-backend/lib/file-storage"
	recordstore "crm-backend/lib/forms/record-store"
	notifyhandler "crm-backend/lib/notify"
	initchecker "crm-backend/lib/utils/init-checker"
	"crm-backend/lib/workflow/assign"
	"crm-backend/lib/workflow/store"
	"crm-backend/models"
	workflowapimodels "crm-backend/models/api/workflow"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(actor policy.Actor, data workflowapimodels.RequestCreateData) (id string, err error)
	Get(actor policy.Actor, id string) (view workflowapimodels.RequestView, err error)
	List(actor policy.Actor, filter workflowapimodels.RequestFilter) (list []workflowapimodels.RequestView, rowCount int64, err error)
	History(actor policy.Actor, filter workflowapimodels.RequestFilter) (list []workflowapimodels.RequestView, rowCount int64, err error)
	ChangeStatus(actor policy.Actor, id, status string) error
	Assign(actor policy.Actor, id string, data workflowapimodels.RequestAssignData) error
	Unassign(actor policy.Actor, id string) error
	SelfAssign(actor policy.Actor, id string) error
	Suggest(workspaceID, departmentID, query string) (list []workflowapimodels.AssigneeView, err error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"department", departmentprovider.Instance,
		"notify", notifyhandler.Instance,
	)
	Instance = impl{
		requestStore: store.NewInstance(db.DB),
		recordStore:  recordstore.NewInstance(db.DB),
		userStore:    usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	requestStore store.Provider
	recordStore  recordstore.Provider
	userStore    usersstore.Provider
}

func (i impl) Create(actor policy.Actor, data workflowapimodels.RequestCreateData) (id string, err error) {
	_, err = departmentprovider.Instance.Get(actor.WorkspaceID, data.DepartmentID)
	if err != nil {
		return "", err
	}
	rec := dbmodels.Request{
		BaseWorkspaceModel: dbmodels.BaseWorkspaceModel{
			WorkspaceID: actor.WorkspaceID,
		},
		Title:        data.Title,
		Description:  data.Description,
		Status:       models.RequestStatuses[0],
		Priority:     models.ParseRequestPriority(data.Priority),
		DepartmentID: data.DepartmentID,
		CreatedByID:  actor.ID,
		Meta:         models.MetaData{},
	}
	id, err = i.requestStore.Create(rec)
	if err != nil {
		log.
			WithField("workspace_id", actor.WorkspaceID).
			WithError(err).
			Error("ошибка создания заявки")
		return "", err
	}
	log.
		WithField("workspace_id", actor.WorkspaceID).
		WithField("request_id", id).
		Info("создана заявка")
	return id, nil
}

func (i impl) getExisting(workspaceID, id string) (*dbmodels.Request, error) {
	rec, err := i.requestStore.GetByID(workspaceID, id)
	if err != nil {
		log.
			WithField("request_id", id).
			WithError(err).
			Error("ошибка поиска заявки")
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("заявка не найдена")
	}
	return rec, nil
}

func requestContext(rec dbmodels.Request) policy.RequestContext {
	reqCtx := policy.RequestContext{
		DepartmentID: rec.DepartmentID,
		CreatedByID:  rec.CreatedByID,
	}
	if rec.AssignedToID != nil {
		reqCtx.AssignedToID = *rec.AssignedToID
	}
	return reqCtx
}

func (i impl) Get(actor policy.Actor, id string) (view workflowapimodels.RequestView, err error) {
	rec, err := i.getExisting(actor.WorkspaceID, id)
	if err != nil {
		return workflowapimodels.RequestView{}, err
	}
	if !policy.CanViewRequest(actor, requestContext(*rec)) {
		return workflowapimodels.RequestView{}, errors.New("нет доступа к заявке")
	}
	return workflowapimodels.RequestConvert(*rec), nil
}

func (i impl) list(actor policy.Actor, filter workflowapimodels.RequestFilter, doneOnly bool) (list []workflowapimodels.RequestView, rowCount int64, err error) {
	page, limit := filter.GetPage()
	storeFilter := store.Filter{
		WorkspaceID:  actor.WorkspaceID,
		DepartmentID: filter.DepartmentID,
		AssigneeID:   filter.AssigneeID,
		DoneOnly:     doneOnly,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}
	role := actor.Role.Normalized()
	switch {
	case role.In(models.UserRoleSuperAdmin, models.UserRoleSystemAdmin, models.UserRoleAdmin):
		// без ограничений в рамках workspace
	case role == models.UserRoleManager:
		storeFilter.RestrictParticipant = true
		storeFilter.ParticipantID = actor.ID
		storeFilter.OwnDepartmentID = actor.DepartmentID
	default:
		storeFilter.RestrictParticipant = true
		storeFilter.ParticipantID = actor.ID
	}
	recList, rowCount, err := i.requestStore.List(storeFilter)
	if err != nil {
		log.
			WithField("workspace_id", actor.WorkspaceID).
			WithError(err).
			Error("ошибка получения списка заявок")
		return nil, 0, err
	}
	list = make([]workflowapimodels.RequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, workflowapimodels.RequestConvert(rec))
	}
	return list, rowCount, nil
}

// List отдаёт активные заявки, завершённые доступны через History
func (i impl) List(actor policy.Actor, filter workflowapimodels.RequestFilter) (list []workflowapimodels.RequestView, rowCount int64, err error) {
	return i.list(actor, filter, false)
}

func (i impl) History(actor policy.Actor, filter workflowapimodels.RequestFilter) (list []workflowapimodels.RequestView, rowCount int64, err error) {
	return i.list(actor, filter, true)
}

func (i impl) ChangeStatus(actor policy.Actor, id, statusValue string) error {
	status, ok := models.ParseRequestStatus(statusValue)
	if !ok {
		return errors.Errorf("неизвестный статус: %v", statusValue)
	}
	rec, err := i.getExisting(actor.WorkspaceID, id)
	if err != nil {
		return err
	}
	if !rec.Status.IsAllowChange(status) {
		return errors.Errorf("недопустимый переход статуса: %v -> %v", rec.Status, status)
	}
	if !policy.CanChangeRequestStatus(actor, requestContext(*rec)) {
		return errors.New("нет прав на изменение статуса заявки")
	}
	meta := models.MetaData{}
	for k, v := range rec.Meta {
		meta[k] = v
	}
	if status == models.RequestStatusDone {
		meta[models.MetaKeyDoneAt] = time.Now().UTC().Format(time.RFC3339)
	} else {
		delete(meta, models.MetaKeyDoneAt)
	}
	updMap := map[string]interface{}{
		"status": string(status),
		"meta":   meta,
	}
	err = i.requestStore.Update(actor.WorkspaceID, id, updMap)
	if err != nil {
		log.
			WithField("request_id", id).
			WithError(err).
			Error("ошибка изменения статуса заявки")
		return err
	}
	log.
		WithField("request_id", id).
		WithField("status", status).
		Info("изменён статус заявки")
	rec.Status = status
	i.notifyParticipants(actor, *rec)
	return nil
}

// участники заявки без самого автора изменения
func (i impl) notifyParticipants(actor policy.Actor, rec dbmodels.Request) {
	recipientIDs := []string{rec.CreatedByID}
	if rec.AssignedToID != nil {
		recipientIDs = append(recipientIDs, *rec.AssignedToID)
	}
	seen := map[string]bool{actor.ID: true}
	recipients := []dbmodels.WorkspaceUser{}
	for _, userID := range recipientIDs {
		if userID == "" || seen[userID] {
			continue
		}
		seen[userID] = true
		user, err := i.userStore.GetByID(userID)
		if err != nil {
			log.WithField("user_id", userID).WithError(err).Error("ошибка поиска получателя уведомления")
			continue
		}
		if user == nil {
			continue
		}
		recipients = append(recipients, *user)
	}
	if len(recipients) > 0 {
		notifyhandler.Instance.RequestStatusChanged(rec, recipients)
	}
}

func (i impl) resolveAssignee(actor policy.Actor, rec dbmodels.Request, data workflowapimodels.RequestAssignData) (*dbmodels.WorkspaceUser, error) {
	if data.AssigneeID != "" {
		user, err := i.userStore.GetByID(data.AssigneeID)
		if err != nil {
			return nil, err
		}
		if user == nil || user.WorkspaceID != actor.WorkspaceID {
			return nil, errors.New("исполнитель не найден")
		}
		return user, nil
	}
	resolver := assign.NewResolver(rosterAdapter{users: i.userStore}, i.workspacePool(actor.WorkspaceID))
	candidate, err := resolver.Resolve(actor.WorkspaceID, rec.DepartmentID, data.AssigneeName)
	if err != nil {
		return nil, err
	}
	return i.userStore.GetByID(candidate.ID)
}

func (i impl) checkAssignTarget(actor policy.Actor, target dbmodels.WorkspaceUser) error {
	if !target.IsActive {
		return errors.New("исполнитель заблокирован")
	}
	if !policy.IsAssignable(target.Role) {
		return errors.New("исполнителем может быть только обычный пользователь")
	}
	if actor.Role.Normalized() == models.UserRoleManager {
		if target.DepartmentID == nil || *target.DepartmentID != actor.DepartmentID {
			return errors.New("руководитель может назначать только сотрудников своего подразделения")
		}
	}
	return nil
}

func (i impl) Assign(actor policy.Actor, id string, data workflowapimodels.RequestAssignData) error {
	rec, err := i.getExisting(actor.WorkspaceID, id)
	if err != nil {
		return err
	}
	if !policy.CanAssign(actor, requestContext(*rec)) {
		return errors.New("нет прав на назначение исполнителя")
	}
	target, err := i.resolveAssignee(actor, *rec, data)
	if err != nil {
		return err
	}
	if target == nil {
		return errors.New("исполнитель не найден")
	}
	if rec.AssignedToID != nil && *rec.AssignedToID != "" && *rec.AssignedToID != target.ID {
		return errors.New("заявка уже назначена другому исполнителю")
	}
	if err = i.checkAssignTarget(actor, *target); err != nil {
		return err
	}
	return i.assignTo(actor, *rec, *target)
}

func (i impl) assignTo(actor policy.Actor, rec dbmodels.Request, target dbmodels.WorkspaceUser) error {
	updMap := map[string]interface{}{
		"assigned_to_id": target.ID,
		"status":         string(models.RequestStatusAssigned),
	}
	err := i.requestStore.Update(actor.WorkspaceID, rec.ID, updMap)
	if err != nil {
		log.
			WithField("request_id", rec.ID).
			WithError(err).
			Error("ошибка назначения исполнителя")
		return err
	}
	log.
		WithField("request_id", rec.ID).
		WithField("assignee_id", target.ID).
		Info("назначен исполнитель заявки")
	rec.Status = models.RequestStatusAssigned
	rec.AssignedToID = &target.ID
	notifyhandler.Instance.RequestAssigned(rec, target)
	return nil
}

func (i impl) Unassign(actor policy.Actor, id string) error {
	rec, err := i.getExisting(actor.WorkspaceID, id)
	if err != nil {
		return err
	}
	if !policy.CanUnassign(actor, requestContext(*rec)) {
		return errors.New("нет прав на снятие исполнителя")
	}
	var former *dbmodels.WorkspaceUser
	if rec.AssignedToID != nil && *rec.AssignedToID != "" {
		former, err = i.userStore.GetByID(*rec.AssignedToID)
		if err != nil {
			log.WithField("user_id", *rec.AssignedToID).WithError(err).Error("ошибка поиска исполнителя")
		}
	}
	updMap := map[string]interface{}{
		"assigned_to_id": nil,
		"status":         string(models.RequestStatusNew),
	}
	err = i.requestStore.Update(actor.WorkspaceID, id, updMap)
	if err != nil {
		log.
			WithField("request_id", id).
			WithError(err).
			Error("ошибка снятия исполнителя")
		return err
	}
	log.
		WithField("request_id", id).
		Info("снят исполнитель заявки")
	if former != nil {
		rec.Status = models.RequestStatusNew
		rec.AssignedToID = nil
		notifyhandler.Instance.RequestUnassigned(*rec, *former)
	}
	return nil
}

func (i impl) SelfAssign(actor policy.Actor, id string) error {
	rec, err := i.getExisting(actor.WorkspaceID, id)
	if err != nil {
		return err
	}
	if !policy.CanSelfAssign(actor, requestContext(*rec)) {
		return errors.New("заявка уже назначена другому исполнителю")
	}
	target, err := i.userStore.GetByID(actor.ID)
	if err != nil {
		return err
	}
	if target == nil || target.WorkspaceID != actor.WorkspaceID {
		return errors.New("пользователь не найден")
	}
	if !target.IsActive {
		return errors.New("пользователь заблокирован")
	}
	return i.assignTo(actor, *rec, *target)
}

// rosterAdapter отдаёт состав отдела в виде кандидатов назначения
type rosterAdapter struct {
	users usersstore.Provider
}

func (r rosterAdapter) DepartmentUsers(workspaceID, departmentID string) ([]assign.Candidate, error) {
	recList, err := r.users.GetByDepartment(workspaceID, departmentID)
	if err != nil {
		return nil, err
	}
	return toCandidates(recList), nil
}

func toCandidates(recList []dbmodels.WorkspaceUser) []assign.Candidate {
	list := make([]assign.Candidate, 0, len(recList))
	for _, rec := range recList {
		if !rec.IsActive {
			continue
		}
		candidate := assign.Candidate{
			ID:       rec.ID,
			FullName: rec.GetFullName(),
			Role:     rec.Role.Normalized(),
		}
		if rec.DepartmentID != nil {
			candidate.DepartmentID = *rec.DepartmentID
		}
		list = append(list, candidate)
	}
	return list
}

// workspacePool это резервный пул кандидатов на случай, когда состав
// отдела ещё не загружен
func (i impl) workspacePool(workspaceID string) []assign.Candidate {
	recList, err := i.userStore.GetList(workspaceID, "", 1, 1000)
	if err != nil {
		log.WithField("workspace_id", workspaceID).WithError(err).Error("ошибка получения пользователей workspace")
		return nil
	}
	return toCandidates(recList)
}

func (i impl) Suggest(workspaceID, departmentID, query string) (list []workflowapimodels.AssigneeView, err error) {
	recList, err := i.userStore.GetByDepartment(workspaceID, departmentID)
	if err != nil {
		log.
			WithField("department_id", departmentID).
			WithError(err).
			Error("ошибка получения состава отдела")
		return nil, err
	}
	pool := assign.Merge(toCandidates(recList), i.workspacePool(workspaceID))
	suggestions := assign.Suggest(query, pool)
	list = make([]workflowapimodels.AssigneeView, 0, len(suggestions))
	for _, candidate := range suggestions {
		list = append(list, workflowapimodels.AssigneeView{
			ID:       candidate.ID,
			FullName: candidate.FullName,
		})
	}
	return list, nil
}

// Delete удаляет заявку вместе с порождённой записью шаблона и вложениями
func (i impl) Delete(ctx context.Context, actor policy.Actor, id string) error {
	rec, err := i.getExisting(actor.WorkspaceID, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteRequest(actor, requestContext(*rec)) {
		return errors.New("нет прав на удаление заявки")
	}
	recordID := rec.LinkedRecordID()
	if recordID == "" {
		linked, err := i.recordStore.GetByRequestID(id)
		if err != nil {
			return err
		}
		if linked != nil {
			recordID = linked.ID
		}
	}
	if recordID != "" {
		err = i.recordStore.Delete(recordID)
		if err != nil {
			log.
				WithField("request_id", id).
				WithField("record_id", recordID).
				WithError(err).
				Error("ошибка удаления записи шаблона")
			return err
		}
	}
	if filestorage.Instance != nil {
		err = filestorage.Instance.DeleteByRequest(ctx, actor.WorkspaceID, id)
		if err != nil {
			log.
				WithField("request_id", id).
				WithError(err).
				Error("ошибка удаления вложений заявки")
		}
	}
	err = i.requestStore.Delete(actor.WorkspaceID, id)
	if err != nil {
		log.
			WithField("request_id", id).
			WithError(err).
			Error("ошибка удаления заявки")
		return err
	}
	log.
		WithField("request_id", id).
		Info("удалена заявка")
	return nil
}
