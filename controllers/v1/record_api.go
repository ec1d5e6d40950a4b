package apiv1

import (
	formshandler "crm-backend/lib/forms"
	"crm-backend/middleware"
	apimodels "crm-backend/models/api"
	formsapimodels "crm-backend/models/api/forms"

	"crm-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

type recordApiController struct {
	controllers.BaseAPIController
}

func InitRecordApiRouters(app *fiber.App) {
	controller := recordApiController{}
	app.Route("record", func(router fiber.Router) {
		router.Post("submit", controller.submit)
		router.Post("submit_batch", controller.submitBatch)
		router.Post(":template_id/list", controller.list)
		router.Post(":template_id/queue", controller.queue)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Отправка формы
// @Tags Записи форм
// @Description Отправка заполненной формы по шаблону
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formsapimodels.SubmitData	true	"request body"
// @Success 200 {object} apimodels.Response{data=formsapimodels.SubmitResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/record/submit [post]
func (c *recordApiController) submit(ctx *fiber.Ctx) error {
	var payload formsapimodels.SubmitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	resp, err := formshandler.Instance.Submit(actor, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки формы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Пакетная отправка форм
// @Tags Записи форм
// @Description Пакетная отправка строк по шаблону, останавливается на первой ошибке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formsapimodels.SubmitBatchData	true	"request body"
// @Success 200 {object} apimodels.Response{data=formsapimodels.BatchResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/record/submit_batch [post]
func (c *recordApiController) submitBatch(ctx *fiber.Ctx) error {
	var payload formsapimodels.SubmitBatchData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	resp, err := formshandler.Instance.SubmitBatch(actor, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка пакетной отправки форм")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список записей шаблона
// @Tags Записи форм
// @Description Список записей шаблона с пагинацией
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formsapimodels.RecordFilter	true	"request body"
// @Param   template_id         path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]formsapimodels.RecordView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/record/{template_id}/list [post]
func (c *recordApiController) list(ctx *fiber.Ctx) error {
	templateID, err := c.GetParamID(ctx, "template_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload formsapimodels.RecordFilter
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	resp, rowCount, err := formshandler.Instance.Records(actor, templateID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка записей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(resp, rowCount))
}

// @Summary Очередь записей шаблона
// @Tags Записи форм
// @Description Проекция очереди записей со статусами заявок
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 apimodels.Pagination	true	"request body"
// @Param   template_id         path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.Response{data=formsapimodels.QueueView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/record/{template_id}/queue [post]
func (c *recordApiController) queue(ctx *fiber.Ctx) error {
	templateID, err := c.GetParamID(ctx, "template_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload apimodels.Pagination
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	resp, err := formshandler.Instance.Queue(actor, templateID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения очереди записей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление записи
// @Tags Записи форм
// @Description Удаление записи и связанной заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/record/{id} [delete]
func (c *recordApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	err = formshandler.Instance.DeleteRecord(ctx.Context(), actor, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления записи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
