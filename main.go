package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"crm-backend/config"
	apiv1 "crm-backend/controllers/v1"
	"crm-backend/fiberlog"
	"crm-backend/initializers"
	"crm-backend/lib/ws"
	"crm-backend/middleware"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // limit of 100MB
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiv1.InitAuthApiRouters(apiV1)
	apiv1.InitUsersApiRouters(apiV1)

	//справочники
	dicts := fiber.New()
	apiV1.Mount("/dicts", dicts)
	dicts.Use(middleware.AuthorizationRequired())
	dicts.Use(middleware.RbacMiddleware())
	apiv1.InitDepartmentApiRouters(dicts)

	//формы
	forms := fiber.New()
	apiV1.Mount("/forms", forms)
	forms.Use(middleware.AuthorizationRequired())
	forms.Use(middleware.RbacMiddleware())
	apiv1.InitTemplateApiRouters(forms)
	apiv1.InitRecordApiRouters(forms)

	//заявки
	workflow := fiber.New()
	apiV1.Mount("/workflow", workflow)
	workflow.Use(middleware.AuthorizationRequired())
	workflow.Use(middleware.RbacMiddleware())
	apiv1.InitRequestApiRouters(workflow)

	//реестр
	registry := fiber.New()
	apiV1.Mount("/registry", registry)
	registry.Use(middleware.AuthorizationRequired())
	registry.Use(middleware.RbacMiddleware())
	apiv1.InitRegistryApiRouters(registry)

	//отчёты
	report := fiber.New()
	apiV1.Mount("/report", report)
	report.Use(middleware.AuthorizationRequired())
	report.Use(middleware.RbacMiddleware())
	apiv1.InitReportApiRouters(report)

	//вложения
	files := fiber.New()
	apiV1.Mount("/files", files)
	files.Use(middleware.AuthorizationRequired())
	files.Use(middleware.RbacMiddleware())
	apiv1.InitFilesApiRouters(files)

	//websocket
	wsApp := fiber.New()
	app.Mount("/ws", wsApp)
	wsApp.Use(middleware.AuthorizationRequired())
	ws.InitWs(wsApp)

	app.Hooks().OnShutdown()

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
