package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClaimStatus(t *testing.T) {
	t.Run(`допустимые переходы`, func(t *testing.T) {
		require.True(t, ClaimStatusDraft.CanTransitionTo(ClaimStatusPending))
		require.True(t, ClaimStatusPending.CanTransitionTo(ClaimStatusAccepted))
		require.True(t, ClaimStatusPending.CanTransitionTo(ClaimStatusRejected))
		require.True(t, ClaimStatusRejected.CanTransitionTo(ClaimStatusPending))
		require.True(t, ClaimStatusAccepted.CanTransitionTo(ClaimStatusReimbursed))
	})

	t.Run(`недопустимые переходы`, func(t *testing.T) {
		require.False(t, ClaimStatusDraft.CanTransitionTo(ClaimStatusAccepted))
		require.False(t, ClaimStatusDraft.CanTransitionTo(ClaimStatusRejected))
		require.False(t, ClaimStatusDraft.CanTransitionTo(ClaimStatusReimbursed))
		require.False(t, ClaimStatusPending.CanTransitionTo(ClaimStatusDraft))
		require.False(t, ClaimStatusPending.CanTransitionTo(ClaimStatusReimbursed))
		require.False(t, ClaimStatusAccepted.CanTransitionTo(ClaimStatusPending))
		require.False(t, ClaimStatusAccepted.CanTransitionTo(ClaimStatusRejected))
		require.False(t, ClaimStatusRejected.CanTransitionTo(ClaimStatusAccepted))
		require.False(t, ClaimStatusRejected.CanTransitionTo(ClaimStatusReimbursed))
	})

	t.Run(`возмещённая заявка конечна`, func(t *testing.T) {
		require.True(t, ClaimStatusReimbursed.IsTerminal())
		for _, status := range []ClaimStatus{ClaimStatusDraft, ClaimStatusPending, ClaimStatusAccepted, ClaimStatusRejected} {
			require.False(t, status.IsTerminal(), string(status))
			require.False(t, ClaimStatusReimbursed.CanTransitionTo(status), string(status))
		}
	})

	t.Run(`переход в тот же статус запрещён`, func(t *testing.T) {
		for _, status := range []ClaimStatus{ClaimStatusDraft, ClaimStatusPending, ClaimStatusAccepted, ClaimStatusRejected, ClaimStatusReimbursed} {
			require.False(t, status.CanTransitionTo(status), string(status))
		}
	})

	t.Run(`редактирование суммы и описания`, func(t *testing.T) {
		require.True(t, ClaimStatusDraft.CanEditAmount())
		require.True(t, ClaimStatusPending.CanEditAmount())
		require.False(t, ClaimStatusAccepted.CanEditAmount())
		require.False(t, ClaimStatusRejected.CanEditAmount())
		require.False(t, ClaimStatusReimbursed.CanEditAmount())
	})

	t.Run(`редактирование реквизитов`, func(t *testing.T) {
		for _, status := range []ClaimStatus{ClaimStatusDraft, ClaimStatusPending, ClaimStatusAccepted, ClaimStatusRejected} {
			require.True(t, status.CanEditBankDetails(), string(status))
		}
		require.False(t, ClaimStatusReimbursed.CanEditBankDetails())
	})

	t.Run(`политика вложений`, func(t *testing.T) {
		// добавление: черновик и рассмотрение
		require.True(t, ClaimStatusDraft.CanAddEvidence())
		require.True(t, ClaimStatusPending.CanAddEvidence())
		require.False(t, ClaimStatusAccepted.CanAddEvidence())
		require.False(t, ClaimStatusRejected.CanAddEvidence())
		require.False(t, ClaimStatusReimbursed.CanAddEvidence())

		// удаление: черновик и отклонённая
		require.True(t, ClaimStatusDraft.CanRemoveEvidence())
		require.False(t, ClaimStatusPending.CanRemoveEvidence())
		require.False(t, ClaimStatusAccepted.CanRemoveEvidence())
		require.True(t, ClaimStatusRejected.CanRemoveEvidence())
		require.False(t, ClaimStatusReimbursed.CanRemoveEvidence())
	})

	t.Run(`неизвестный статус`, func(t *testing.T) {
		unknown := ClaimStatus("UNKNOWN")
		require.False(t, unknown.IsValid())
		require.False(t, unknown.CanTransitionTo(ClaimStatusPending))
	})
}
