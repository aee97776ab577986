package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"expense-claims-backend/models"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/claims/{id}/submit [post]")
		require.Nil(t, err)
		require.Equal(t, POST, method)
		r1 := pathToRegex(path)

		validUri := "/api/v1/claims/123-321/submit"
		isMatch := r1.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri := "/api/v1/claims/submit"
		isMatch = r1.MatchString(invalidUri)
		require.Equal(t, false, isMatch)

		path, method, err = parseSwaggerPattern("/api/v1/claims/{id}/evidence/{fileName} [delete]")
		require.Nil(t, err)
		require.Equal(t, DELETE, method)
		r2 := pathToRegex(path)

		validUri = "/api/v1/claims/123-321/evidence/receipt.pdf"
		isMatch = r2.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri = "/api/v1/claims/123-321/evidence"
		isMatch = r2.MatchString(invalidUri)
		require.Equal(t, false, isMatch)
	})

	t.Run(`правила по ролям`, func(t *testing.T) {
		NewHandler()

		handler, found := Instance.GetRuleFunc("POST", "/api/v1/claims/123/submit")
		require.True(t, found)
		require.True(t, handler("user-1", models.GeneralStaffRole, "/api/v1/claims/123/submit"))
		require.True(t, handler("user-1", models.LineManagerRole, "/api/v1/claims/123/submit"))
		require.False(t, handler("user-1", models.AdministratorRole, "/api/v1/claims/123/submit"))

		handler, found = Instance.GetRuleFunc("POST", "/api/v1/review/claims/123/approve")
		require.True(t, found)
		require.True(t, handler("user-1", models.LineManagerRole, "/api/v1/review/claims/123/approve"))
		require.False(t, handler("user-1", models.GeneralStaffRole, "/api/v1/review/claims/123/approve"))

		handler, found = Instance.GetRuleFunc("POST", "/api/v1/payroll/claims/123/reimburse")
		require.True(t, found)
		require.True(t, handler("user-1", models.PayrollOfficerRole, "/api/v1/payroll/claims/123/reimburse"))
		require.False(t, handler("user-1", models.LineManagerRole, "/api/v1/payroll/claims/123/reimburse"))

		handler, found = Instance.GetRuleFunc("POST", "/api/v1/accounts")
		require.True(t, found)
		require.True(t, handler("user-1", models.AdministratorRole, "/api/v1/accounts"))
		require.False(t, handler("user-1", models.PayrollOfficerRole, "/api/v1/accounts"))

		_, found = Instance.GetRuleFunc("GET", "/api/v1/unknown")
		require.False(t, found)
	})

	t.Run(`доступные операции роли`, func(t *testing.T) {
		NewHandler()

		permissions := Instance.GetPermissions(models.GeneralStaffRole)
		require.Contains(t, permissions[models.ClaimModule], models.SubmitPermission)
		require.NotContains(t, permissions, models.ReviewModule)

		permissions = Instance.GetPermissions(models.LineManagerRole)
		require.Contains(t, permissions[models.ReviewModule], models.DecisionPermission)
		require.Contains(t, permissions[models.ClaimModule], models.CreatePermission)

		permissions = Instance.GetPermissions(models.AdministratorRole)
		require.Contains(t, permissions[models.AccountsModule], models.ManagePermission)
		require.NotContains(t, permissions, models.ClaimModule)
	})
}
