package apiv1

import (
	"fmt"
	"io"
	"net/url"

	filestorage "crm-backend/lib/file-storage"
	"crm-backend/middleware"
	apimodels "crm-backend/models/api"
	filesapimodels "crm-backend/models/api/files"

	"crm-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

type filesApiController struct {
	controllers.BaseAPIController
}

func InitFilesApiRouters(app *fiber.App) {
	controller := filesApiController{}
	app.Route(":id", func(idRoute fiber.Router) {
		idRoute.Get("", controller.get)
		idRoute.Delete("", controller.delete)
	})
	app.Route("request/:id", func(requestRoute fiber.Router) {
		requestRoute.Get("list", controller.list)
		requestRoute.Post("upload", controller.upload)
	})
}

// @Summary Загрузка вложения заявки
// @Tags Вложения
// @Description Загрузка файла вложения заявки, multipart поле file
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param   file				formData	file	true	"file"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/files/request/{id}/upload [post]
func (c *filesApiController) upload(ctx *fiber.Ctx) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не передан файл"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка чтения файла")
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка чтения файла")
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := filestorage.Instance.Upload(ctx.Context(), workspaceID, requestID, userID,
		fileHeader.Filename, fileHeader.Header.Get(fiber.HeaderContentType), body)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Скачивание вложения
// @Tags Вложения
// @Description Скачивание файла вложения по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "file ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/files/{id} [get]
func (c *filesApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	body, rec, err := filestorage.Instance.Get(ctx.Context(), workspaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка скачивания вложения")
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(rec.FileName)))
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Список вложений заявки
// @Tags Вложения
// @Description Список вложений заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200 {object} apimodels.Response{data=[]filesapimodels.FileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/files/request/{id}/list [get]
func (c *filesApiController) list(ctx *fiber.Ctx) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	recList, err := filestorage.Instance.List(workspaceID, requestID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка вложений")
	}
	resp := make([]filesapimodels.FileView, 0, len(recList))
	for _, rec := range recList {
		resp = append(resp, filesapimodels.FileConvert(rec))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление вложения
// @Tags Вложения
// @Description Удаление файла вложения по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "file ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/files/{id} [delete]
func (c *filesApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	err = filestorage.Instance.Delete(ctx.Context(), workspaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
