package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	ClaimModule    Module = "CLAIM"
	ReviewModule   Module = "REVIEW"
	PayrollModule  Module = "PAYROLL"
	AccountsModule Module = "ACCOUNTS"
	ProfileModule  Module = "PROFILE"
)

type Permission string

const (
	CreatePermission    Permission = "CREATE"
	EditPermission      Permission = "EDIT"
	ViewPermission      Permission = "VIEW"
	SubmitPermission    Permission = "SUBMIT"
	DecisionPermission  Permission = "DECISION"
	ReimbursePermission Permission = "REIMBURSE"
	FilesPermission     Permission = "FILES"
	ManagePermission    Permission = "MANAGE"
)
