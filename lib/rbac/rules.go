package rbac

import (
	"expense-claims-backend/models"
)

var (
	// роли, от имени которых существуют заявки
	ClaimOwnerRoleSet = []models.UserRole{models.GeneralStaffRole, models.ConsultantRole, models.LineManagerRole, models.PayrollOfficerRole}
	ManagerRoleSet    = []models.UserRole{models.LineManagerRole}
	PayrollRoleSet    = []models.UserRole{models.PayrollOfficerRole}
	AdminRoleSet      = []models.UserRole{models.AdministratorRole}
	AllRoles          = []models.UserRole{models.GeneralStaffRole, models.ConsultantRole, models.LineManagerRole, models.PayrollOfficerRole, models.AdministratorRole}
)

func (i *impl) initRules() {
	i.addClaimRbac()
	i.addReviewRbac()
	i.addPayrollRbac()
	i.addAccountsRbac()
	i.addProfileRbac()
}

func (i *impl) addClaimRbac() {
	//CREATE
	i.RegisterRule(models.ClaimModule, models.CreatePermission, ClaimOwnerRoleSet, "/api/v1/claims [post]", nil)
	//VIEW
	i.RegisterRule(models.ClaimModule, models.ViewPermission, ClaimOwnerRoleSet, "/api/v1/claims/list [post]", nil)
	i.RegisterRule(models.ClaimModule, models.ViewPermission, ClaimOwnerRoleSet, "/api/v1/claims/{id} [get]", nil)
	//EDIT
	i.RegisterRule(models.ClaimModule, models.EditPermission, ClaimOwnerRoleSet, "/api/v1/claims/{id} [put]", nil)
	i.RegisterRule(models.ClaimModule, models.EditPermission, ClaimOwnerRoleSet, "/api/v1/claims/{id} [delete]", nil)
	i.RegisterRule(models.ClaimModule, models.EditPermission, ClaimOwnerRoleSet, "/api/v1/claims/{id}/amount [put]", nil)
	i.RegisterRule(models.ClaimModule, models.EditPermission, ClaimOwnerRoleSet, "/api/v1/claims/{id}/bank_details [put]", nil)
	//SUBMIT
	i.RegisterRule(models.ClaimModule, models.SubmitPermission, ClaimOwnerRoleSet, "/api/v1/claims/{id}/submit [post]", nil)
	i.RegisterRule(models.ClaimModule, models.SubmitPermission, ClaimOwnerRoleSet, "/api/v1/claims/{id}/appeal [post]", nil)
	//FILES
	i.RegisterRule(models.ClaimModule, models.FilesPermission, ClaimOwnerRoleSet, "/api/v1/claims/{id}/evidence [post]", nil)
	i.RegisterRule(models.ClaimModule, models.FilesPermission, ClaimOwnerRoleSet, "/api/v1/claims/{id}/evidence/{fileName} [get]", nil)
	i.RegisterRule(models.ClaimModule, models.FilesPermission, ClaimOwnerRoleSet, "/api/v1/claims/{id}/evidence/{fileName} [delete]", nil)
}

func (i *impl) addReviewRbac() {
	//VIEW
	i.RegisterRule(models.ReviewModule, models.ViewPermission, ManagerRoleSet, "/api/v1/review/claims [get]", nil)
	i.RegisterRule(models.ReviewModule, models.ViewPermission, ManagerRoleSet, "/api/v1/review/employees [get]", nil)
	//DECISION
	i.RegisterRule(models.ReviewModule, models.DecisionPermission, ManagerRoleSet, "/api/v1/review/claims/{id}/approve [post]", nil)
	i.RegisterRule(models.ReviewModule, models.DecisionPermission, ManagerRoleSet, "/api/v1/review/claims/{id}/reject [post]", nil)
}

func (i *impl) addPayrollRbac() {
	//VIEW
	i.RegisterRule(models.PayrollModule, models.ViewPermission, PayrollRoleSet, "/api/v1/payroll/claims [get]", nil)
	i.RegisterRule(models.PayrollModule, models.ViewPermission, PayrollRoleSet, "/api/v1/payroll/claims/export [get]", nil)
	i.RegisterRule(models.PayrollModule, models.ViewPermission, PayrollRoleSet, "/api/v1/payroll/claims/{id}/remittance [get]", nil)
	//REIMBURSE
	i.RegisterRule(models.PayrollModule, models.ReimbursePermission, PayrollRoleSet, "/api/v1/payroll/claims/{id}/reimburse [post]", nil)
}

func (i *impl) addAccountsRbac() {
	//MANAGE
	i.RegisterRule(models.AccountsModule, models.ManagePermission, AdminRoleSet, "/api/v1/accounts [post]", nil)
	i.RegisterRule(models.AccountsModule, models.ManagePermission, AdminRoleSet, "/api/v1/accounts/managers [get]", nil)
	i.RegisterRule(models.AccountsModule, models.ManagePermission, AdminRoleSet, "/api/v1/accounts/{id} [get]", nil)
	i.RegisterRule(models.AccountsModule, models.ManagePermission, AdminRoleSet, "/api/v1/accounts/{id} [delete]", nil)
	i.RegisterRule(models.AccountsModule, models.ManagePermission, AdminRoleSet, "/api/v1/accounts/{id}/role [put]", nil)
	i.RegisterRule(models.AccountsModule, models.ManagePermission, AdminRoleSet, "/api/v1/accounts/{id}/line_manager [put]", nil)
	i.RegisterRule(models.AccountsModule, models.ManagePermission, AdminRoleSet, "/api/v1/accounts/{id}/region [put]", nil)
	i.RegisterRule(models.AccountsModule, models.ManagePermission, AdminRoleSet, "/api/v1/accounts/{id}/email [put]", nil)
}

func (i *impl) addProfileRbac() {
	//VIEW
	i.RegisterRule(models.ProfileModule, models.ViewPermission, AllRoles, "/api/v1/profile/permissions [get]", nil)
}
