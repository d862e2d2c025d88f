// File: internal/dto/http_error.go
package dto

// swagger:model dto.HTTPError
type HTTPError struct {
	Message string `json:"message" example:"descripcion del error"`
}
