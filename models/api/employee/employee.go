package employeeapimodels

import (
	"net/mail"

	"github.com/pkg/errors"

	"expense-claims-backend/models"
	dbmodels "expense-claims-backend/models/db"
)

type CreateAccount struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Region    string `json:"region"`
	// роль по умолчанию - GENERAL_STAFF
	Role          models.UserRole `json:"role,omitempty"`
	LineManagerID string          `json:"line_manager_id,omitempty"`
}

func (r CreateAccount) Validate() error {
	_, err := mail.ParseAddress(r.Email)
	if err != nil {
		return errors.New("почта имеет неправильный формат")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	if r.FirstName == "" || r.LastName == "" {
		return errors.New("не указано имя сотрудника")
	}
	if r.Role != "" && !r.Role.IsValid() {
		return errors.New("неизвестная роль")
	}
	return nil
}

type ChangeRole struct {
	Role models.UserRole `json:"role"`
}

func (r ChangeRole) Validate() error {
	if !r.Role.IsValid() {
		return errors.New("неизвестная роль")
	}
	return nil
}

type SetLineManager struct {
	LineManagerID string `json:"line_manager_id"`
}

func (r SetLineManager) Validate() error {
	if r.LineManagerID == "" {
		return errors.New("не указан руководитель")
	}
	return nil
}

type ChangeRegion struct {
	Region string `json:"region"`
}

func (r ChangeRegion) Validate() error {
	if r.Region == "" {
		return errors.New("не указан регион")
	}
	return nil
}

type ChangeEmail struct {
	Email string `json:"email"`
}

func (r ChangeEmail) Validate() error {
	_, err := mail.ParseAddress(r.Email)
	if err != nil {
		return errors.New("почта имеет неправильный формат")
	}
	return nil
}

type EmployeeView struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Region        string `json:"region"`
	Role          string `json:"role"`
	RoleName      string `json:"role_name"`
	LineManagerID string `json:"line_manager_id,omitempty"`
	IsActive      bool   `json:"is_active"`
}

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	view := EmployeeView{
		ID:        rec.ID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Region:    rec.Region,
		Role:      string(rec.Role),
		RoleName:  rec.Role.ToHuman(),
		IsActive:  rec.IsActive,
	}
	if rec.LineManagerID != nil {
		view.LineManagerID = *rec.LineManagerID
	}
	return view
}
