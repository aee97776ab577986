package roles

import (
	"testing"

	"github.com/stretchr/testify/require"

	"expense-claims-backend/models"
	dbmodels "expense-claims-backend/models/db"
)

func TestActorFactory(t *testing.T) {
	newUser := func(role models.UserRole) dbmodels.Employee {
		return dbmodels.Employee{
			BaseModel: dbmodels.BaseModel{ID: "user-1"},
			Role:      role,
		}
	}

	t.Run(`набор операций по ролям`, func(t *testing.T) {
		cases := []struct {
			role        models.UserRole
			ownsClaims  bool
			reviews     bool
			reimburses  bool
			managesAccs bool
		}{
			{models.GeneralStaffRole, true, false, false, false},
			{models.ConsultantRole, true, false, false, false},
			{models.LineManagerRole, true, true, false, false},
			{models.PayrollOfficerRole, true, false, true, false},
			{models.AdministratorRole, false, false, false, true},
		}
		for _, tc := range cases {
			actor, err := NewWithDeps(newUser(tc.role), Deps{})
			require.Nil(t, err, string(tc.role))
			require.Equal(t, "user-1", actor.UserID())
			require.Equal(t, tc.role, actor.Role())

			_, ok := actor.(ClaimOwner)
			require.Equal(t, tc.ownsClaims, ok, string(tc.role))
			_, ok = actor.(Reviewer)
			require.Equal(t, tc.reviews, ok, string(tc.role))
			_, ok = actor.(Payer)
			require.Equal(t, tc.reimburses, ok, string(tc.role))
			_, ok = actor.(AccountManager)
			require.Equal(t, tc.managesAccs, ok, string(tc.role))
		}
	})

	t.Run(`неизвестная роль`, func(t *testing.T) {
		_, err := NewWithDeps(newUser("INTERN"), Deps{})
		require.NotNil(t, err)
	})
}
