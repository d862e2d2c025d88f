// File: internal/dto/register_form.go
package dto

// RegisterForm is the POST /register form body. Every field except the phone
// number is required; the phone number must be digits only when present.
type RegisterForm struct {
	Username         string `form:"username" validate:"required"`
	Password         string `form:"password" validate:"required"`
	ConfirmPassword  string `form:"confirm_password" validate:"required,eqfield=Password"`
	FirstName        string `form:"first_name" validate:"required"`
	PaternalLastName string `form:"paternal_last_name" validate:"required"`
	MaternalLastName string `form:"maternal_last_name" validate:"required"`
	Gender           string `form:"gender" validate:"required,len=1"`
	PhoneNumber      string `form:"phone_number" validate:"omitempty,numeric"`
}
