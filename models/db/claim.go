package dbmodels

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"expense-claims-backend/models"
)

// Claim - авансовый отчёт. Запись хранит только данные; проверки владения,
// ролей и допустимости переходов живут в движке жизненного цикла.
type Claim struct {
	BaseModel
	EmployeeID string    `gorm:"type:varchar(36);index"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID"`

	Status       models.ClaimStatus `gorm:"type:varchar(20);index"`
	AttemptCount int

	Title       string          `gorm:"type:varchar(255)"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(100)"`
	Currency    string          `gorm:"type:varchar(3)"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2)"`

	Feedback string `gorm:"type:text"`

	AccountName   *string `gorm:"type:varchar(150)"`
	AccountNumber *string `gorm:"type:varchar(34)"`
	SortCode      *string `gorm:"type:varchar(10)"`

	// имена вложений в порядке добавления; сами файлы лежат в S3
	Evidence pq.StringArray `gorm:"type:text[]"`
}

func (r Claim) HasEvidence(fileName string) bool {
	for _, name := range r.Evidence {
		if name == fileName {
			return true
		}
	}
	return false
}
