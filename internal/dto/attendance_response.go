// File: internal/dto/attendance_response.go
package dto

// AttendanceResponse is the JSON payload of the individual attendance API:
// the days the user attended, the earliest check-in time per day (HH:MM) and
// the days on which anyone at all checked in.
// swagger:model dto.AttendanceResponse
type AttendanceResponse struct {
	AttendedDays     []string          `json:"attended_days" example:"2025-03-05"`
	AttendedTimes    map[string]string `json:"attended_times"`
	SystemActiveDays []string          `json:"system_active_days" example:"2025-03-05"`
}
