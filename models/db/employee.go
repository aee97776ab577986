package dbmodels

import (
	"fmt"
	"time"

	"expense-claims-backend/models"
)

type Employee struct {
	BaseModel
	Password      string          `gorm:"type:varchar(128)"`
	FirstName     string          `gorm:"type:varchar(150)"`
	LastName      string          `gorm:"type:varchar(150)"`
	Email         string          `gorm:"type:varchar(255);uniqueIndex"`
	Region        string          `gorm:"type:varchar(100)"`
	Role          models.UserRole `gorm:"type:varchar(50)"`
	LineManagerID *string         `gorm:"type:varchar(36);index"`
	LineManager   *Employee       `gorm:"foreignKey:LineManagerID"`
	IsActive      bool
	LastLogin     time.Time
}

func (r Employee) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

// IsManagedBy - числится ли сотрудник за этим линейным руководителем
func (r Employee) IsManagedBy(managerID string) bool {
	return r.LineManagerID != nil && *r.LineManagerID == managerID
}
