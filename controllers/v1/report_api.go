package apiv1

import (
	exporthandler "crm-backend/lib/export"
	"crm-backend/middleware"

	"crm-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Get("workload", controller.workload)
}

// @Summary Отчёт по загрузке подразделений
// @Tags Отчёты
// @Description Формирование pdf отчёта по загрузке подразделений workspace
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/workload [get]
func (c *reportApiController) workload(ctx *fiber.Ctx) error {
	actor := middleware.GetActor(ctx)
	pdfFile, err := exporthandler.Instance.WorkloadReport(actor)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования отчёта")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, "attachment; filename=workload_report.pdf")
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}
