// File: internal/dto/login_form.go
package dto

// LoginForm is the POST /login form body.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}
