package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplate(t *testing.T) {
	tp := NewTemplate()

	t.Run("Welcome Email", func(t *testing.T) {
		subject, plainBody, htmlBody, err := tp.ParseTemplate("welcome_email.html", struct{ Username string }{Username: "testuser"})
		assert.NoError(t, err)
		assert.Equal(t, "Welcome to Inkpost!", subject.String())
		assert.Contains(t, plainBody.String(), "Hi testuser,")
		assert.Contains(t, htmlBody.String(), "<p>Hi testuser,</p>")
	})

	t.Run("Comment Notification Email", func(t *testing.T) {
		data := struct {
			BlogTitle         string
			CommenterUsername string
		}{
			BlogTitle:         "My First Blog",
			CommenterUsername: "commenter",
		}

		subject, plainBody, htmlBody, err := tp.ParseTemplate("comment_notification_email.html", data)
		assert.NoError(t, err)
		assert.Equal(t, `New comment on "My First Blog"`, subject.String())
		assert.Contains(t, plainBody.String(), `commenter just commented on your blog "My First Blog".`)
		assert.Contains(t, htmlBody.String(), "<strong>commenter</strong>")
	})

	t.Run("Unknown Template", func(t *testing.T) {
		_, _, _, err := tp.ParseTemplate("missing.html", nil)
		assert.Error(t, err)
	})
}
