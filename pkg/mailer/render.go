package mailer

import (
	"errors"
	"fmt"

	mailtpl "github.com/oksasatya/go-hexagonal-users/pkg/mailer/templates"
)

var ErrEmptyJob = errors.New("email job has neither template nor subject")

// Render resolves the subject and bodies of job, rendering its template when
// one is named.
func Render(job EmailJob) (subject, text, html string, err error) {
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", ErrEmptyJob
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("render %s: %w", job.Template, err)
	}
	return subject, text, html, nil
}
