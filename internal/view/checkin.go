// File: internal/view/checkin.go
package view

import "asistencia-qr/internal/service"

// CheckinPage is the presentation data of the scan-result page.
type CheckinPage struct {
	Title    string
	CSSClass string
	Name     string
	Message  string
}

// NewCheckinPage maps a check-in outcome to its page: a pure function so the
// handler stays free of presentation decisions.
func NewCheckinPage(res service.CheckinResult) CheckinPage {
	page := CheckinPage{
		Name:    res.DisplayName,
		Message: res.Message,
	}
	switch res.Status {
	case service.CheckinRegistered:
		page.Title = "¡Registro Exitoso! ✅"
		page.CSSClass = "success"
	case service.CheckinAlreadyRegistered:
		page.Title = "Asistencia Registrada Hoy ⚠️"
		page.CSSClass = "warning"
	default:
		page.Title = "Error al Registrar ❌"
		page.CSSClass = "error"
	}
	return page
}
