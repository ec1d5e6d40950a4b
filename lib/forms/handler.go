package formshandler

import (
	"context"

	"crm-backend/db"
	"crm-backend/lib/access/policy"
	departmentprovider "crm-backend/lib/dicts/department"
	"crm-backend/lib/forms/queue"
	recordstore "crm-backend/lib/forms/record-store"
	"crm-backend/lib/forms/schema"
	"crm-backend/lib/forms/store"
	"crm-backend/lib/forms/submit"
	initchecker "crm-backend/lib/utils/init-checker"
	workflowhandler "crm-backend/lib/workflow"
	workflowstore "crm-backend/lib/workflow/store"
	"crm-backend/models"
	apimodels "crm-backend/models/api"
	formsapimodels "crm-backend/models/api/forms"
	workflowapimodels "crm-backend/models/api/workflow"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	CreateTemplate(workspaceID string, data formsapimodels.TemplateData) (id string, err error)
	UpdateTemplate(workspaceID, id string, data formsapimodels.TemplateData) error
	GetTemplate(workspaceID, id string) (view formsapimodels.TemplateView, err error)
	ListTemplates(workspaceID string, pagination apimodels.Pagination) (list []formsapimodels.TemplateView, err error)
	DeleteTemplate(workspaceID, id string) error
	ToggleColumn(workspaceID, id string, data formsapimodels.ToggleColumnData) (result formsapimodels.ToggleColumnResult, err error)
	Submit(actor policy.Actor, data formsapimodels.SubmitData) (result formsapimodels.SubmitResult, err error)
	SubmitBatch(actor policy.Actor, data formsapimodels.SubmitBatchData) (result formsapimodels.BatchResult, err error)
	Queue(actor policy.Actor, templateID string, pagination apimodels.Pagination) (view formsapimodels.QueueView, err error)
	Records(actor policy.Actor, templateID string, filter formsapimodels.RecordFilter) (list []formsapimodels.RecordView, rowCount int64, err error)
	DeleteRecord(ctx context.Context, actor policy.Actor, recordID string) error
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"department", departmentprovider.Instance,
		"workflow", workflowhandler.Instance,
	)
	Instance = impl{
		templateStore: store.NewInstance(db.DB),
		recordStore:   recordstore.NewInstance(db.DB),
		requestStore:  workflowstore.NewInstance(db.DB),
	}
}

type impl struct {
	templateStore store.Provider
	recordStore   recordstore.Provider
	requestStore  workflowstore.Provider
}

func (i impl) CreateTemplate(workspaceID string, data formsapimodels.TemplateData) (id string, err error) {
	fields, settings, err := schema.ValidateTemplate(data.Name, data.Fields, data.RequestSettings)
	if err != nil {
		return "", err
	}
	rec := dbmodels.FormTemplate{
		BaseWorkspaceModel: dbmodels.BaseWorkspaceModel{
			WorkspaceID: workspaceID,
		},
		Name:            data.Name,
		Fields:          fields,
		RequestSettings: settings,
	}
	id, err = i.templateStore.Create(rec)
	if err != nil {
		log.
			WithField("workspace_id", workspaceID).
			WithError(err).
			Error("ошибка создания шаблона")
		return "", err
	}
	log.
		WithField("workspace_id", workspaceID).
		WithField("template_id", id).
		Info("создан шаблон")
	return id, nil
}

func (i impl) getExistingTemplate(workspaceID, id string) (*dbmodels.FormTemplate, error) {
	rec, err := i.templateStore.GetByID(workspaceID, id)
	if err != nil {
		log.
			WithField("template_id", id).
			WithError(err).
			Error("ошибка поиска шаблона")
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("шаблон не найден")
	}
	return rec, nil
}

func (i impl) UpdateTemplate(workspaceID, id string, data formsapimodels.TemplateData) error {
	_, err := i.getExistingTemplate(workspaceID, id)
	if err != nil {
		return err
	}
	fields, settings, err := schema.ValidateTemplate(data.Name, data.Fields, data.RequestSettings)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":             data.Name,
		"fields":           fields,
		"request_settings": settings,
	}
	err = i.templateStore.Update(workspaceID, id, updMap)
	if err != nil {
		log.
			WithField("template_id", id).
			WithError(err).
			Error("ошибка обновления шаблона")
		return err
	}
	return nil
}

func (i impl) GetTemplate(workspaceID, id string) (view formsapimodels.TemplateView, err error) {
	rec, err := i.getExistingTemplate(workspaceID, id)
	if err != nil {
		return formsapimodels.TemplateView{}, err
	}
	return formsapimodels.TemplateConvert(*rec), nil
}

func (i impl) ListTemplates(workspaceID string, pagination apimodels.Pagination) (list []formsapimodels.TemplateView, err error) {
	page, limit := pagination.GetPage()
	recList, err := i.templateStore.List(workspaceID, limit, (page-1)*limit)
	if err != nil {
		log.
			WithField("workspace_id", workspaceID).
			WithError(err).
			Error("ошибка получения списка шаблонов")
		return nil, err
	}
	list = make([]formsapimodels.TemplateView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, formsapimodels.TemplateConvert(rec))
	}
	return list, nil
}

// DeleteTemplate отклоняется, пока по шаблону есть записи
func (i impl) DeleteTemplate(workspaceID, id string) error {
	_, err := i.getExistingTemplate(workspaceID, id)
	if err != nil {
		return err
	}
	count, err := i.recordStore.CountByTemplate(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("нельзя удалить шаблон с записями")
	}
	err = i.templateStore.Delete(workspaceID, id)
	if err != nil {
		log.
			WithField("template_id", id).
			WithError(err).
			Error("ошибка удаления шаблона")
		return err
	}
	log.
		WithField("template_id", id).
		Info("удалён шаблон")
	return nil
}

func (i impl) ToggleColumn(workspaceID, id string, data formsapimodels.ToggleColumnData) (result formsapimodels.ToggleColumnResult, err error) {
	rec, err := i.getExistingTemplate(workspaceID, id)
	if err != nil {
		return formsapimodels.ToggleColumnResult{}, err
	}
	kind := schema.ColumnKind(data.Column)
	var fields models.FieldList
	if data.Enabled {
		var field models.FieldDef
		fields, field, err = schema.EnsureColumn(kind, rec.Fields)
		if err != nil {
			return formsapimodels.ToggleColumnResult{}, err
		}
		result.Field = &field
	} else {
		var field models.FieldDef
		var removed bool
		fields, field, removed = schema.RemoveColumn(kind, rec.Fields)
		if !removed {
			return formsapimodels.ToggleColumnResult{}, errors.New("колонка не найдена в шаблоне")
		}
		result.Field = &field
		result.Removed = true
		count, err := i.recordStore.CountByTemplate(id)
		if err != nil {
			return formsapimodels.ToggleColumnResult{}, err
		}
		result.HasRecords = count > 0
	}
	settings := rec.RequestSettings
	if deptField, found := schema.DepartmentField(fields); found {
		settings.DepartmentFieldKey = deptField.Key
	} else {
		settings.DepartmentFieldKey = ""
	}
	updMap := map[string]interface{}{
		"fields":           fields,
		"request_settings": settings,
	}
	err = i.templateStore.Update(workspaceID, id, updMap)
	if err != nil {
		log.
			WithField("template_id", id).
			WithError(err).
			Error("ошибка переключения колонки шаблона")
		return formsapimodels.ToggleColumnResult{}, err
	}
	return result, nil
}

// отдел по умолчанию для строки, когда у отправителя нет своего отдела
func (i impl) firstDepartmentID(workspaceID string) string {
	list, err := departmentprovider.Instance.List(workspaceID, apimodels.Pagination{Page: 1, Limit: 1})
	if err != nil {
		log.WithField("workspace_id", workspaceID).WithError(err).Error("ошибка получения подразделений")
		return ""
	}
	if len(list) == 0 {
		return ""
	}
	return list[0].ID
}

func (i impl) submitRow(actor policy.Actor, template dbmodels.FormTemplate, row models.EntryData, firstDepartmentID string) (formsapimodels.SubmitResult, error) {
	merged := submit.RowDefaults(template.Fields, actor.DepartmentID, firstDepartmentID)
	for key, value := range row {
		merged[key] = value
	}
	data := submit.CoerceRow(template.Fields, merged, firstDepartmentID)
	if err := submit.ValidateRow(template.Fields, data); err != nil {
		return formsapimodels.SubmitResult{}, err
	}

	var requestID string
	if template.RequestSettings.Enabled {
		draft, err := submit.BuildRequestDraft(template.Name, template.Fields, template.RequestSettings, data)
		if err != nil {
			return formsapimodels.SubmitResult{}, err
		}
		requestID, err = workflowhandler.Instance.Create(actor, workflowapimodels.RequestCreateData{
			Title:        draft.Title,
			Description:  draft.Description,
			Priority:     string(draft.Priority),
			DepartmentID: draft.DepartmentID,
		})
		if err != nil {
			return formsapimodels.SubmitResult{}, err
		}
	}

	rec := dbmodels.FormRecord{
		TemplateID:  template.ID,
		CreatedByID: actor.ID,
		EntryData:   data,
		Meta: models.MetaData{
			models.MetaKeyTemplateID: template.ID,
		},
	}
	if requestID != "" {
		rec.RequestID = &requestID
		rec.Meta[models.MetaKeyRequestID] = requestID
	}
	recordID, err := i.recordStore.Create(rec)
	if err != nil {
		log.
			WithField("template_id", template.ID).
			WithError(err).
			Error("ошибка создания записи шаблона")
		if requestID != "" {
			delErr := i.requestStore.Delete(actor.WorkspaceID, requestID)
			if delErr != nil {
				log.WithField("request_id", requestID).WithError(delErr).Error("ошибка удаления заявки без записи")
			}
		}
		return formsapimodels.SubmitResult{}, err
	}
	if requestID != "" {
		// обратная ссылка проставляется после создания записи
		reqRec, err := i.requestStore.GetByID(actor.WorkspaceID, requestID)
		if err == nil && reqRec != nil {
			meta := models.MetaData{}
			for k, v := range reqRec.Meta {
				meta[k] = v
			}
			meta[models.MetaKeyRecordID] = recordID
			meta[models.MetaKeyTemplateID] = template.ID
			err = i.requestStore.Update(actor.WorkspaceID, requestID, map[string]interface{}{"meta": meta})
		}
		if err != nil {
			log.WithField("request_id", requestID).WithError(err).Error("ошибка привязки записи к заявке")
		}
	}
	saved, err := i.recordStore.GetByID(recordID)
	if err != nil || saved == nil {
		rec.ID = recordID
		saved = &rec
	}
	log.
		WithField("template_id", template.ID).
		WithField("record_id", recordID).
		Info("создана запись шаблона")
	return formsapimodels.SubmitResult{
		Record:    formsapimodels.RecordConvert(*saved),
		RequestID: requestID,
	}, nil
}

func (i impl) Submit(actor policy.Actor, data formsapimodels.SubmitData) (result formsapimodels.SubmitResult, err error) {
	if !policy.Can(actor.Role, policy.ActionSubmitTemplate) {
		return formsapimodels.SubmitResult{}, errors.New("нет прав на отправку формы")
	}
	template, err := i.getExistingTemplate(actor.WorkspaceID, data.TemplateID)
	if err != nil {
		return formsapimodels.SubmitResult{}, err
	}
	return i.submitRow(actor, *template, data.Data, i.firstDepartmentID(actor.WorkspaceID))
}

// SubmitBatch обрабатывает строки последовательно; при ошибке уже
// созданные записи остаются, остаток пакета не отправляется
func (i impl) SubmitBatch(actor policy.Actor, data formsapimodels.SubmitBatchData) (result formsapimodels.BatchResult, err error) {
	if !policy.Can(actor.Role, policy.ActionSubmitTemplate) {
		return formsapimodels.BatchResult{}, errors.New("нет прав на отправку формы")
	}
	template, err := i.getExistingTemplate(actor.WorkspaceID, data.TemplateID)
	if err != nil {
		return formsapimodels.BatchResult{}, err
	}
	firstDepartmentID := i.firstDepartmentID(actor.WorkspaceID)
	result = formsapimodels.BatchResult{
		Succeeded: []formsapimodels.SubmitResult{},
		FailedAt:  -1,
	}
	_, failedAt, batchErr := submit.ProcessBatch(data.Rows, func(row models.EntryData) error {
		rowResult, rowErr := i.submitRow(actor, *template, row, firstDepartmentID)
		if rowErr != nil {
			return rowErr
		}
		result.Succeeded = append(result.Succeeded, rowResult)
		return nil
	})
	if batchErr != nil {
		result.FailedAt = failedAt
		result.Error = batchErr.Error()
	}
	return result, nil
}

func (i impl) loadRequests(ids []string) map[string]dbmodels.Request {
	requests := map[string]dbmodels.Request{}
	recList, err := i.requestStore.GetByIDs(ids)
	if err != nil {
		log.WithError(err).Error("ошибка получения заявок очереди")
		return requests
	}
	for _, rec := range recList {
		requests[rec.ID] = rec
	}
	return requests
}

// Queue собирает очередь обработки по шаблону: записи вместе с
// состоянием связанных заявок
func (i impl) Queue(actor policy.Actor, templateID string, pagination apimodels.Pagination) (view formsapimodels.QueueView, err error) {
	template, err := i.getExistingTemplate(actor.WorkspaceID, templateID)
	if err != nil {
		return formsapimodels.QueueView{}, err
	}
	page, limit := pagination.GetPage()
	filter := recordstore.Filter{
		TemplateID: templateID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	if !policy.Can(actor.Role, policy.ActionViewAllRecords) {
		filter.CreatedByID = actor.ID
	}
	records, rowCount, err := i.recordStore.List(filter)
	if err != nil {
		log.
			WithField("template_id", templateID).
			WithError(err).
			Error("ошибка получения записей шаблона")
		return formsapimodels.QueueView{}, err
	}
	requestIDs := make([]string, 0, len(records))
	for _, rec := range records {
		if requestID := rec.LinkedRequestID(); requestID != "" {
			requestIDs = append(requestIDs, requestID)
		}
	}
	departments := queue.DepartmentNames{}
	nameMap, err := departmentprovider.Instance.NameMap(actor.WorkspaceID)
	if err != nil {
		log.WithField("workspace_id", actor.WorkspaceID).WithError(err).Error("ошибка получения подразделений")
	} else {
		departments = queue.DepartmentNames(nameMap)
	}
	view = formsapimodels.QueueView{
		TemplateID:   templateID,
		Fields:       template.Fields,
		ShowStatus:   queue.ShouldShowStatus(template.Fields),
		ShowPriority: queue.ShouldShowPriority(template.Fields),
		Items:        queue.ProjectQueue(template.Fields, records, i.loadRequests(requestIDs), departments),
		Total:        rowCount,
	}
	return view, nil
}

func (i impl) Records(actor policy.Actor, templateID string, filter formsapimodels.RecordFilter) (list []formsapimodels.RecordView, rowCount int64, err error) {
	_, err = i.getExistingTemplate(actor.WorkspaceID, templateID)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	storeFilter := recordstore.Filter{
		TemplateID: templateID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	if filter.OwnOnly || !policy.Can(actor.Role, policy.ActionViewAllRecords) {
		storeFilter.CreatedByID = actor.ID
	}
	records, rowCount, err := i.recordStore.List(storeFilter)
	if err != nil {
		log.
			WithField("template_id", templateID).
			WithError(err).
			Error("ошибка получения записей шаблона")
		return nil, 0, err
	}
	list = make([]formsapimodels.RecordView, 0, len(records))
	for _, rec := range records {
		list = append(list, formsapimodels.RecordConvert(rec))
	}
	return list, rowCount, nil
}

// DeleteRecord удаляет запись вместе со связанной заявкой
func (i impl) DeleteRecord(ctx context.Context, actor policy.Actor, recordID string) error {
	rec, err := i.recordStore.GetByID(recordID)
	if err != nil {
		log.
			WithField("record_id", recordID).
			WithError(err).
			Error("ошибка поиска записи шаблона")
		return err
	}
	if rec == nil {
		return errors.New("запись не найдена")
	}
	_, err = i.getExistingTemplate(actor.WorkspaceID, rec.TemplateID)
	if err != nil {
		return err
	}
	if requestID := rec.LinkedRequestID(); requestID != "" {
		// удаление заявки само каскадно удаляет запись
		err = workflowhandler.Instance.Delete(ctx, actor, requestID)
		if err != nil {
			return err
		}
		return nil
	}
	if !policy.Can(actor.Role, policy.ActionViewAllRecords) && rec.CreatedByID != actor.ID {
		return errors.New("нет прав на удаление записи")
	}
	err = i.recordStore.Delete(recordID)
	if err != nil {
		log.
			WithField("record_id", recordID).
			WithError(err).
			Error("ошибка удаления записи шаблона")
		return err
	}
	log.
		WithField("record_id", recordID).
		Info("удалена запись шаблона")
	return nil
}
