package storage

import (
	"strings"

	"taskdesk/internal/models"
)

// MinJobDescription is the shortest accepted task description, after trimming.
const MinJobDescription = 5

// ValidateTask checks the fields a caller supplies when creating a task.
func ValidateTask(t models.Task) error {
	if n := len([]rune(strings.TrimSpace(t.JobDescription))); n < MinJobDescription {
		return Invalid("jobDescription", "must be at least %d characters", MinJobDescription)
	}
	if !t.Priority.IsValid() {
		return Invalid("priority", "must be one of HIGH, NORMAL, LOW")
	}
	if !t.NotifyVia.IsValid() {
		return Invalid("notifyVia", "must be one of SMS, WA, EMAIL")
	}
	if t.PartyID <= 0 {
		return Invalid("partyId", "is required")
	}
	return nil
}

// ValidateParty checks required party fields and the status enum.
func ValidateParty(p models.Party) error {
	required := []struct {
		field, value string
	}{
		{"firstName", p.FirstName},
		{"secondName", p.SecondName},
		{"mobile1", p.Mobile1},
		{"type", p.Type},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return Invalid(r.field, "is required")
		}
	}
	if !p.Status.IsValid() {
		return Invalid("status", "must be one of active, inactive")
	}
	return nil
}
