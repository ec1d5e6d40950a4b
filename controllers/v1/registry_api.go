package apiv1

import (
	clientprovider "crm-backend/lib/registry/client"
	companyprovider "crm-backend/lib/registry/company"
	"crm-backend/middleware"
	apimodels "crm-backend/models/api"
	registryapimodels "crm-backend/models/api/registry"

	"crm-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

type registryApiController struct {
	controllers.BaseAPIController
}

type companyListRequest struct {
	apimodels.Pagination
	Query string `json:"query,omitempty"`
}

type clientListRequest struct {
	apimodels.Pagination
	Query     string `json:"query,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
}

func InitRegistryApiRouters(app *fiber.App) {
	controller := registryApiController{}
	app.Route("company", func(router fiber.Router) {
		router.Post("list", controller.companyList)
		router.Post("", controller.companyCreate)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.companyGet)
			idRoute.Put("", controller.companyUpdate)
			idRoute.Delete("", controller.companyDelete)
		})
	})
	app.Route("client", func(router fiber.Router) {
		router.Post("list", controller.clientList)
		router.Post("", controller.clientCreate)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.clientGet)
			idRoute.Put("", controller.clientUpdate)
			idRoute.Delete("", controller.clientDelete)
		})
	})
}

// @Summary Список компаний
// @Tags Реестр
// @Description Список компаний workspace с поиском
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 companyListRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]registryapimodels.CompanyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/registry/company/list [post]
func (c *registryApiController) companyList(ctx *fiber.Ctx) error {
	var payload companyListRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	resp, err := companyprovider.Instance.List(workspaceID, payload.Query, payload.Pagination)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка компаний")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создание компании
// @Tags Реестр
// @Description Создание компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 registryapimodels.CompanyData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/registry/company [post]
func (c *registryApiController) companyCreate(ctx *fiber.Ctx) error {
	var payload registryapimodels.CompanyData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	id, err := companyprovider.Instance.Create(workspaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания компании")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение компании по ИД
// @Tags Реестр
// @Description Получение компании по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=registryapimodels.CompanyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/registry/company/{id} [get]
func (c *registryApiController) companyGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	resp, err := companyprovider.Instance.Get(workspaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения компании")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление компании
// @Tags Реестр
// @Description Обновление компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 registryapimodels.CompanyData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/registry/company/{id} [put]
func (c *registryApiController) companyUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload registryapimodels.CompanyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	err = companyprovider.Instance.Update(workspaceID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления компании")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление компании
// @Tags Реестр
// @Description Удаление компании, заблокировано при наличии клиентов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/registry/company/{id} [delete]
func (c *registryApiController) companyDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	err = companyprovider.Instance.Delete(workspaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления компании")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список клиентов
// @Tags Реестр
// @Description Список клиентов workspace с поиском и фильтром по компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 clientListRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]registryapimodels.ClientView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/registry/client/list [post]
func (c *registryApiController) clientList(ctx *fiber.Ctx) error {
	var payload clientListRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	resp, err := clientprovider.Instance.List(workspaceID, payload.Query, payload.CompanyID, payload.Pagination)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка клиентов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создание клиента
// @Tags Реестр
// @Description Создание клиента
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 registryapimodels.ClientData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/registry/client [post]
func (c *registryApiController) clientCreate(ctx *fiber.Ctx) error {
	var payload registryapimodels.ClientData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	id, err := clientprovider.Instance.Create(workspaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания клиента")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение клиента по ИД
// @Tags Реестр
// @Description Получение клиента по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=registryapimodels.ClientView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/registry/client/{id} [get]
func (c *registryApiController) clientGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	resp, err := clientprovider.Instance.Get(workspaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения клиента")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление клиента
// @Tags Реестр
// @Description Обновление клиента
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 registryapimodels.ClientData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/registry/client/{id} [put]
func (c *registryApiController) clientUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload registryapimodels.ClientData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	err = clientprovider.Instance.Update(workspaceID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления клиента")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление клиента
// @Tags Реестр
// @Description Удаление клиента
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/registry/client/{id} [delete]
func (c *registryApiController) clientDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	workspaceID := middleware.ResolveWorkspace(ctx)
	err = clientprovider.Instance.Delete(workspaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления клиента")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
