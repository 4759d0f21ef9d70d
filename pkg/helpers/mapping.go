package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/ornakala-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/ornakala-backend/pkg/mailer/templates"
)

// SubjectForUniversal is the fallback subject when the subject template renders empty.
func SubjectForUniversal(data map[string]any) string {
	typeStr := fmt.Sprintf("%v", data["Type"])
	switch strings.ToLower(typeStr) {
	case mailtpl.Welcome:
		return "Welcome to your new account"
	case mailtpl.LoginNotification:
		return "New login to your account"
	case mailtpl.ProfileUpdated:
		return "Your profile was updated successfully"
	case mailtpl.KYCSubmitted:
		return "We received your identity verification"
	default:
		return "Notification"
	}
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// MapToUniversal routes a named notification job to the universal template,
// keeping the original name in Data["Type"]. Unknown templates are left alone.
func MapToUniversal(job *mailer.EmailJob) {
	name := strings.ToLower(job.Template)
	if !mailtpl.Known(name) {
		return
	}
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if _, ok := job.Data["Type"]; !ok || fmt.Sprintf("%v", job.Data["Type"]) == "" {
		job.Data["Type"] = name
	}
	job.Template = mailtpl.Universal
}
