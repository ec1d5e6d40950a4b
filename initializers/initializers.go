package initializers

import (
	"context"

	"crm-backend/config"
	"crm-backend/fiberlog"
	authhandler "crm-backend/lib/access/auth"
	usershandler "crm-backend/lib/access/users"
	departmentprovider "crm-backend/lib/dicts/department"
	workspaceprovider "crm-backend/lib/dicts/workspace"
	exporthandler "crm-backend/lib/export"
	xlsexport "crm-backend/lib/export/xls"
	filestorage "crm-backend/lib/file-storage"
	formshandler "crm-backend/lib/forms"
	notifyhandler "crm-backend/lib/notify"
	"crm-backend/lib/rbac"
	clientprovider "crm-backend/lib/registry/client"
	companyprovider "crm-backend/lib/registry/company"
	workflowhandler "crm-backend/lib/workflow"
	connectionhub "crm-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	filestorage.NewHandler()
	workspaceprovider.NewHandler()
	departmentprovider.NewHandler()
	usershandler.NewHandler()
	authhandler.NewHandler()
	companyprovider.NewHandler()
	clientprovider.NewHandler()
	notifyhandler.NewHandler()
	workflowhandler.NewHandler()
	formshandler.NewHandler()
	xlsexport.NewHandler()
	exporthandler.NewHandler()
	rbac.NewHandler()
}
