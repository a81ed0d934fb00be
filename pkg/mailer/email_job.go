package mailer

import "fmt"

// EmailJob is the message carried on the email queue. A job names a
// Template and its Data, or carries a ready Subject with Text and/or HTML.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// FillRecipient sets the Email and RecipientEmail template fields to To
// when the producer left them blank.
func (j *EmailJob) FillRecipient() {
	if j.Data == nil {
		j.Data = make(map[string]any, 2)
	}
	for _, key := range [...]string{"Email", "RecipientEmail"} {
		if v, ok := j.Data[key]; !ok || v == nil || fmt.Sprint(v) == "" {
			j.Data[key] = j.To
		}
	}
}
