package models

type ClaimStatus string

const (
	ClaimStatusDraft      ClaimStatus = "DRAFT"
	ClaimStatusPending    ClaimStatus = "PENDING"
	ClaimStatusAccepted   ClaimStatus = "ACCEPTED"
	ClaimStatusRejected   ClaimStatus = "REJECTED"
	ClaimStatusReimbursed ClaimStatus = "REIMBURSED"
)

// MaxAttemptCount - предельное число подач/апелляций по одной заявке.
const MaxAttemptCount = 3

var claimStatusHumanName = map[ClaimStatus]string{
	ClaimStatusDraft:      "Черновик",
	ClaimStatusPending:    "На рассмотрении",
	ClaimStatusAccepted:   "Согласована",
	ClaimStatusRejected:   "Отклонена",
	ClaimStatusReimbursed: "Возмещена",
}

func (s ClaimStatus) ToHuman() string {
	if human, exist := claimStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ClaimStatus) IsValid() bool {
	_, exist := claimStatusHumanName[s]
	return exist
}

// допустимые рёбра жизненного цикла заявки:
// Draft -> Pending (подача), Rejected -> Pending (апелляция),
// Pending -> Accepted/Rejected (решение руководителя),
// Accepted -> Reimbursed (возмещение, терминальный статус)
var claimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimStatusDraft:      {ClaimStatusPending},
	ClaimStatusPending:    {ClaimStatusAccepted, ClaimStatusRejected},
	ClaimStatusRejected:   {ClaimStatusPending},
	ClaimStatusAccepted:   {ClaimStatusReimbursed},
	ClaimStatusReimbursed: {},
}

func (s ClaimStatus) CanTransitionTo(target ClaimStatus) bool {
	for _, allowed := range claimTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s ClaimStatus) IsTerminal() bool {
	return len(claimTransitions[s]) == 0 && s.IsValid()
}

// CanEditAmount - сумма меняется только до решения руководителя
func (s ClaimStatus) CanEditAmount() bool {
	return s == ClaimStatusDraft || s == ClaimStatusPending
}

// CanEditBankDetails - реквизиты можно уточнять вплоть до выплаты
func (s ClaimStatus) CanEditBankDetails() bool {
	return s != ClaimStatusReimbursed
}

// CanAddEvidence - вложения добавляются в черновике и во время рассмотрения
func (s ClaimStatus) CanAddEvidence() bool {
	return s == ClaimStatusDraft || s == ClaimStatusPending
}

// CanRemoveEvidence - удалять вложения можно только пока заявка редактируема
// (черновик или возвращена на доработку)
func (s ClaimStatus) CanRemoveEvidence() bool {
	return s == ClaimStatusDraft || s == ClaimStatusRejected
}
