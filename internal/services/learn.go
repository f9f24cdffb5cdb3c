package services

import "github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"

type Tip struct {
	Title     string  `json:"title"`
	Text      string  `json:"text"`
	SourceURL *string `json:"source_url"`
}

func sourceURL(url string) *string {
	return &url
}

var caregiverTips = []Tip{
	{Title: "Encourage Routine", Text: "Establishing a daily routine helps memory retention.", SourceURL: sourceURL("https://alz.org/routine-tips")},
	{Title: "Use Visual Aids", Text: "Visual reminders can help with remembering tasks."},
	{Title: "Stay Positive", Text: "Positive reinforcement boosts confidence and motivation.", SourceURL: sourceURL("https://caregiver.org/positive-reinforcement")},
}

// ListCaregiverTips returns the static educational tips shown to caregivers.
func ListCaregiverTips(caller Caller) []Tip {
	if !caller.HasRole(models.RoleCaregiver) {
		return []Tip{}
	}
	return caregiverTips
}
