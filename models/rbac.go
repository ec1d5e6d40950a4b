package models

type RbacFunc func(workspaceID, userID string, role UserRole, path string) bool

type Module string

const (
	UsersModule      Module = "USERS"
	DepartmentModule Module = "DEPARTMENT"
	TemplateModule   Module = "TEMPLATE"
	RecordModule     Module = "RECORD"
	RequestModule    Module = "REQUEST"
	RegistryModule   Module = "REGISTRY"
	ReportModule     Module = "REPORT"
	FilesModule      Module = "FILES"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
	ExportPermission Permission = "EXPORT"
)
