package models

// HealthStatus is the backend health report.
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Healthy reports whether the backend and every component are operational.
func (h *HealthStatus) Healthy() bool {
	if h.Status != "healthy" {
		return false
	}
	for _, state := range h.Components {
		if state != "operational" {
			return false
		}
	}
	return true
}
