package pdfexport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// WorkloadRow это строка отчёта по загрузке подразделения.
type WorkloadRow struct {
	DepartmentName string
	Active         int64
	Assigned       int64
	Done           int64
}

// GenerateWorkloadReport собирает pdf отчёт по загрузке подразделений.
func GenerateWorkloadReport(workspaceName string, rows []WorkloadRow) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateWorkloadReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 14)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 10, fmt.Sprintf("Загрузка подразделений: %v", workspaceName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Сформирован %v", time.Now().Format("02.01.2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colWidths := []float64{80, 30, 30, 30}
	headers := []string{"Подразделение", "Активные", "Назначено", "Завершено"}
	pdf.SetFont("Arial", "B", 11)
	for idx, header := range headers {
		pdf.CellFormat(colWidths[idx], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.CellFormat(colWidths[0], 8, row.DepartmentName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%v", row.Active), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%v", row.Assigned), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%v", row.Done), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
