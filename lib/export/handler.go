package exporthandler

import (
	"bytes"
	"fmt"
	"sort"

	"crm-backend/db"
	"crm-backend/lib/access/policy"
	departmentprovider "crm-backend/lib/dicts/department"
	workspaceprovider "crm-backend/lib/dicts/workspace"
	pdfexport "crm-backend/lib/export/pdf"
	xlsexport "crm-backend/lib/export/xls"
	"crm-backend/lib/forms/queue"
	recordstore "crm-backend/lib/forms/record-store"
	formsstore "crm-backend/lib/forms/store"
	initchecker "crm-backend/lib/utils/init-checker"
	workflowstore "crm-backend/lib/workflow/store"
	"crm-backend/models"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	ExportTemplateRecords(actor policy.Actor, templateID string) (file *bytes.Buffer, fileName string, err error)
	WorkloadReport(actor policy.Actor) (pdfFile []byte, err error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"department", departmentprovider.Instance,
		"workspace", workspaceprovider.Instance,
		"xls", xlsexport.Instance,
	)
	Instance = impl{
		templateStore: formsstore.NewInstance(db.DB),
		recordStore:   recordstore.NewInstance(db.DB),
		requestStore:  workflowstore.NewInstance(db.DB),
	}
}

type impl struct {
	templateStore formsstore.Provider
	recordStore   recordstore.Provider
	requestStore  workflowstore.Provider
}

// ExportTemplateRecords выгружает все записи шаблона в xlsx
func (i impl) ExportTemplateRecords(actor policy.Actor, templateID string) (file *bytes.Buffer, fileName string, err error) {
	if !policy.Can(actor.Role, policy.ActionExportRecords) {
		return nil, "", errors.New("нет прав на выгрузку записей")
	}
	template, err := i.templateStore.GetByID(actor.WorkspaceID, templateID)
	if err != nil {
		log.
			WithField("template_id", templateID).
			WithError(err).
			Error("ошибка поиска шаблона")
		return nil, "", err
	}
	if template == nil {
		return nil, "", errors.New("шаблон не найден")
	}
	records, err := i.recordStore.ListAll(templateID)
	if err != nil {
		log.
			WithField("template_id", templateID).
			WithError(err).
			Error("ошибка получения записей шаблона")
		return nil, "", err
	}
	requestIDs := make([]string, 0, len(records))
	for _, rec := range records {
		if requestID := rec.LinkedRequestID(); requestID != "" {
			requestIDs = append(requestIDs, requestID)
		}
	}
	requests := map[string]dbmodels.Request{}
	reqList, err := i.requestStore.GetByIDs(requestIDs)
	if err != nil {
		log.WithError(err).Error("ошибка получения заявок для выгрузки")
	} else {
		for _, rec := range reqList {
			requests[rec.ID] = rec
		}
	}
	departments := queue.DepartmentNames{}
	nameMap, err := departmentprovider.Instance.NameMap(actor.WorkspaceID)
	if err != nil {
		log.WithField("workspace_id", actor.WorkspaceID).WithError(err).Error("ошибка получения подразделений")
	} else {
		departments = queue.DepartmentNames(nameMap)
	}
	items := queue.ProjectQueue(template.Fields, records, requests, departments)
	file, err = xlsexport.Instance.ExportRecords(*template,
		items,
		queue.ShouldShowStatus(template.Fields),
		queue.ShouldShowPriority(template.Fields))
	if err != nil {
		log.
			WithField("template_id", templateID).
			WithError(err).
			Error("ошибка выгрузки записей шаблона")
		return nil, "", err
	}
	log.
		WithField("template_id", templateID).
		WithField("rows", len(items)).
		Info("выгружены записи шаблона")
	return file, fmt.Sprintf("%v.xlsx", template.Name), nil
}

// WorkloadReport собирает pdf отчёт по загрузке подразделений workspace
func (i impl) WorkloadReport(actor policy.Actor) (pdfFile []byte, err error) {
	if !policy.Can(actor.Role, policy.ActionExportRecords) {
		return nil, errors.New("нет прав на формирование отчёта")
	}
	workspaceName, err := workspaceprovider.Instance.GetName(actor.WorkspaceID)
	if err != nil {
		log.
			WithField("workspace_id", actor.WorkspaceID).
			WithError(err).
			Error("ошибка получения workspace")
		return nil, err
	}
	counts, err := i.requestStore.CountByDepartment(actor.WorkspaceID)
	if err != nil {
		log.
			WithField("workspace_id", actor.WorkspaceID).
			WithError(err).
			Error("ошибка получения статистики заявок")
		return nil, err
	}
	nameMap, err := departmentprovider.Instance.NameMap(actor.WorkspaceID)
	if err != nil {
		log.WithField("workspace_id", actor.WorkspaceID).WithError(err).Error("ошибка получения подразделений")
		nameMap = map[string]string{}
	}
	byDepartment := map[string]*pdfexport.WorkloadRow{}
	for _, count := range counts {
		row, exist := byDepartment[count.DepartmentID]
		if !exist {
			name := nameMap[count.DepartmentID]
			if name == "" {
				name = count.DepartmentID
			}
			row = &pdfexport.WorkloadRow{DepartmentName: name}
			byDepartment[count.DepartmentID] = row
		}
		switch count.Status {
		case models.RequestStatusDone:
			row.Done += count.Count
		case models.RequestStatusAssigned, models.RequestStatusInProcess:
			row.Assigned += count.Count
			row.Active += count.Count
		default:
			row.Active += count.Count
		}
	}
	rows := make([]pdfexport.WorkloadRow, 0, len(byDepartment))
	for _, row := range byDepartment {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(a, b int) bool {
		return rows[a].DepartmentName < rows[b].DepartmentName
	})
	return pdfexport.GenerateWorkloadReport(workspaceName, rows)
}
