package rbac

import (
	"crm-backend/models"
)

var (
	AdminRoleSet = []models.UserRole{
		models.UserRoleSuperAdmin,
		models.UserRoleSystemAdmin,
		models.UserRoleAdmin,
	}
	ManagerRoleSet = []models.UserRole{
		models.UserRoleSuperAdmin,
		models.UserRoleSystemAdmin,
		models.UserRoleAdmin,
		models.UserRoleManager,
	}
	SubmitRoleSet = []models.UserRole{
		models.UserRoleSuperAdmin,
		models.UserRoleSystemAdmin,
		models.UserRoleAdmin,
		models.UserRoleManager,
		models.UserRoleUser,
	}
	AllRoles = []models.UserRole{
		models.UserRoleSuperAdmin,
		models.UserRoleSystemAdmin,
		models.UserRoleAdmin,
		models.UserRoleManager,
		models.UserRoleUser,
		models.UserRoleViewer,
	}
)

func (i *impl) initRules() {
	i.addUsersRbac()
	i.addDepartmentRbac()
	i.addTemplateRbac()
	i.addRecordRbac()
	i.addRequestRbac()
	i.addRegistryRbac()
	i.addReportRbac()
	i.addFilesRbac()
}

func (i *impl) addUsersRbac() {
	//VIEW
	i.RegisterRule(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/users/list [post]", nil)
	i.RegisterRule(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/users/{id} [get]", nil)
	//MANAGE
	i.RegisterRule(models.UsersModule, models.ManagePermission, ManagerRoleSet, "/api/v1/users [post]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, ManagerRoleSet, "/api/v1/users/{id} [put]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id} [delete]", nil)
}

func (i *impl) addDepartmentRbac() {
	//VIEW
	i.RegisterRule(models.DepartmentModule, models.ViewPermission, AllRoles, "/api/v1/dicts/department/list [post]", nil)
	i.RegisterRule(models.DepartmentModule, models.ViewPermission, AllRoles, "/api/v1/dicts/department/{id} [get]", nil)
	i.RegisterRule(models.DepartmentModule, models.ViewPermission, ManagerRoleSet, "/api/v1/dicts/department/{id}/users [get]", nil)
	//MANAGE
	i.RegisterRule(models.DepartmentModule, models.ManagePermission, AdminRoleSet, "/api/v1/dicts/department [post]", nil)
	i.RegisterRule(models.DepartmentModule, models.ManagePermission, AdminRoleSet, "/api/v1/dicts/department/{id} [put]", nil)
	i.RegisterRule(models.DepartmentModule, models.ManagePermission, AdminRoleSet, "/api/v1/dicts/department/{id} [delete]", nil)
}

func (i *impl) addTemplateRbac() {
	//VIEW
	i.RegisterRule(models.TemplateModule, models.ViewPermission, AllRoles, "/api/v1/forms/template/list [post]", nil)
	i.RegisterRule(models.TemplateModule, models.ViewPermission, AllRoles, "/api/v1/forms/template/{id} [get]", nil)
	//MANAGE
	i.RegisterRule(models.TemplateModule, models.ManagePermission, ManagerRoleSet, "/api/v1/forms/template [post]", nil)
	i.RegisterRule(models.TemplateModule, models.ManagePermission, ManagerRoleSet, "/api/v1/forms/template/{id} [put]", nil)
	i.RegisterRule(models.TemplateModule, models.ManagePermission, ManagerRoleSet, "/api/v1/forms/template/{id}/toggle_column [put]", nil)
	i.RegisterRule(models.TemplateModule, models.ManagePermission, ManagerRoleSet, "/api/v1/forms/template/{id} [delete]", nil)
	//EXPORT
	i.RegisterRule(models.TemplateModule, models.ExportPermission, ManagerRoleSet, "/api/v1/forms/template/{id}/export [get]", nil)
}

func (i *impl) addRecordRbac() {
	//CREATE
	i.RegisterRule(models.RecordModule, models.CreatePermission, SubmitRoleSet, "/api/v1/forms/record/submit [post]", nil)
	i.RegisterRule(models.RecordModule, models.CreatePermission, SubmitRoleSet, "/api/v1/forms/record/submit_batch [post]", nil)
	//VIEW
	i.RegisterRule(models.RecordModule, models.ViewPermission, AllRoles, "/api/v1/forms/record/{template_id}/list [post]", nil)
	i.RegisterRule(models.RecordModule, models.ViewPermission, AllRoles, "/api/v1/forms/record/{template_id}/queue [post]", nil)
	//EDIT: право на удаление конкретной записи дорешивает обработчик
	i.RegisterRule(models.RecordModule, models.EditPermission, SubmitRoleSet, "/api/v1/forms/record/{id} [delete]", nil)
}

func (i *impl) addRequestRbac() {
	//VIEW
	i.RegisterRule(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/workflow/request/list [post]", nil)
	i.RegisterRule(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/workflow/request/history [post]", nil)
	i.RegisterRule(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/workflow/request/{id} [get]", nil)
	//CREATE
	i.RegisterRule(models.RequestModule, models.CreatePermission, SubmitRoleSet, "/api/v1/workflow/request [post]", nil)
	//FLOW: границы по отделу и участию дорешивает обработчик
	i.RegisterRule(models.RequestModule, models.FlowPermission, SubmitRoleSet, "/api/v1/workflow/request/{id}/status [put]", nil)
	i.RegisterRule(models.RequestModule, models.FlowPermission, ManagerRoleSet, "/api/v1/workflow/request/{id}/assign [put]", nil)
	i.RegisterRule(models.RequestModule, models.FlowPermission, ManagerRoleSet, "/api/v1/workflow/request/{id}/unassign [put]", nil)
	i.RegisterRule(models.RequestModule, models.FlowPermission, AllRoles, "/api/v1/workflow/request/{id}/self_assign [put]", nil)
	i.RegisterRule(models.RequestModule, models.FlowPermission, ManagerRoleSet, "/api/v1/workflow/request/suggest [post]", nil)
	//EDIT
	i.RegisterRule(models.RequestModule, models.EditPermission, SubmitRoleSet, "/api/v1/workflow/request/{id} [delete]", nil)
}

func (i *impl) addRegistryRbac() {
	//VIEW
	i.RegisterRule(models.RegistryModule, models.ViewPermission, AllRoles, "/api/v1/registry/company/list [post]", nil)
	i.RegisterRule(models.RegistryModule, models.ViewPermission, AllRoles, "/api/v1/registry/company/{id} [get]", nil)
	i.RegisterRule(models.RegistryModule, models.ViewPermission, AllRoles, "/api/v1/registry/client/list [post]", nil)
	i.RegisterRule(models.RegistryModule, models.ViewPermission, AllRoles, "/api/v1/registry/client/{id} [get]", nil)
	//MANAGE
	i.RegisterRule(models.RegistryModule, models.ManagePermission, ManagerRoleSet, "/api/v1/registry/company [post]", nil)
	i.RegisterRule(models.RegistryModule, models.ManagePermission, ManagerRoleSet, "/api/v1/registry/company/{id} [put]", nil)
	i.RegisterRule(models.RegistryModule, models.ManagePermission, ManagerRoleSet, "/api/v1/registry/company/{id} [delete]", nil)
	i.RegisterRule(models.RegistryModule, models.ManagePermission, ManagerRoleSet, "/api/v1/registry/client [post]", nil)
	i.RegisterRule(models.RegistryModule, models.ManagePermission, ManagerRoleSet, "/api/v1/registry/client/{id} [put]", nil)
	i.RegisterRule(models.RegistryModule, models.ManagePermission, ManagerRoleSet, "/api/v1/registry/client/{id} [delete]", nil)
}

func (i *impl) addReportRbac() {
	//EXPORT
	i.RegisterRule(models.ReportModule, models.ExportPermission, ManagerRoleSet, "/api/v1/report/workload [get]", nil)
}

func (i *impl) addFilesRbac() {
	//VIEW
	i.RegisterRule(models.FilesModule, models.ViewPermission, AllRoles, "/api/v1/files/{id} [get]", nil)
	i.RegisterRule(models.FilesModule, models.ViewPermission, AllRoles, "/api/v1/files/request/{id}/list [get]", nil)
	//CREATE
	i.RegisterRule(models.FilesModule, models.CreatePermission, SubmitRoleSet, "/api/v1/files/request/{id}/upload [post]", nil)
	//MANAGE
	i.RegisterRule(models.FilesModule, models.ManagePermission, ManagerRoleSet, "/api/v1/files/{id} [delete]", nil)
}
