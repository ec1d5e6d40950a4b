package xlsexport

import (
	"bytes"

	"crm-backend/config"
	formsapimodels "crm-backend/models/api/forms"
	dbmodels "crm-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportRecords(template dbmodels.FormTemplate, items []formsapimodels.QueueItem, showStatus, showPriority bool) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

// название листа в xlsx ограничено 31 символом
func sheetName(templateName string) string {
	runes := []rune(templateName)
	if len(runes) > 31 {
		runes = runes[:31]
	}
	name := string(runes)
	if name == "" {
		name = "Записи"
	}
	return name
}

// ExportRecords выгружает записи шаблона: колонки в порядке шаблона,
// следом состояние связанной заявки. Число строк ограничено настройкой.
func (i impl) ExportRecords(template dbmodels.FormTemplate, items []formsapimodels.QueueItem, showStatus, showPriority bool) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	headers := make([]string, 0, len(template.Fields)+3)
	for _, field := range template.Fields {
		headers = append(headers, field.Label)
	}
	if showStatus {
		headers = append(headers, "Статус заявки")
	}
	if showPriority {
		headers = append(headers, "Приоритет")
	}
	headers = append(headers, "Исполнитель")

	maxRows := config.Conf.Export.MaxRows
	if maxRows > 0 && len(items) > maxRows {
		items = items[:maxRows]
	}

	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, headers)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(items) != 0 {
		row, err = writeRecordData(f, sheet, template, items, showStatus, showPriority, len(headers), row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, sheetName(template.Name))
	return f.WriteToBuffer()
}

func writeRecordData(f *excelize.File, sheet string, template dbmodels.FormTemplate, items []formsapimodels.QueueItem, showStatus, showPriority bool, headerLen, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, headerLen, len(items)+1); err != nil {
		return row, err
	}
	for _, item := range items {
		row++
		col := 0
		for _, field := range template.Fields {
			col++
			value, exist := item.EntryData[field.Key]
			if !exist || value == nil {
				continue
			}
			if err := writeColumn(f, sheet, col, row, value); err != nil {
				return row, err
			}
		}
		if showStatus {
			col++
			if err := writeColumn(f, sheet, col, row, item.StatusName); err != nil {
				return row, err
			}
		}
		if showPriority {
			col++
			if err := writeColumn(f, sheet, col, row, item.Priority); err != nil {
				return row, err
			}
		}
		col++
		if err := writeColumn(f, sheet, col, row, item.AssigneeName); err != nil {
			return row, err
		}
	}
	return row, nil
}
