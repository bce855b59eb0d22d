package dto

// CreateAccountRequest - админское создание аккаунта.
// Созданный так аккаунт сразу верифицирован и одобрен.
type CreateAccountRequest struct {
	Title           string `json:"title"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,is-account-role"`
}

// UpdateAccountRequest - частичное обновление аккаунта.
// Nil-поля не трогаются. Роль и статус меняет только администратор.
type UpdateAccountRequest struct {
	Title     *string `json:"title"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	Role      *string `json:"role" validate:"omitempty,is-account-role"`
	Status    *bool   `json:"status"`

	CompanyName    *string `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
	CompanyEmail   *string `json:"company_email" validate:"omitempty,email"`
	CompanyLogo    *string `json:"company_logo"`
	MobileNumber   *string `json:"mobile_number"`
}
