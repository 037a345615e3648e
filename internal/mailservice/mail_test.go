package mailservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSend(t *testing.T) {
	tests := []struct {
		name     string
		parseErr error
		dialErr  error
		wantErr  bool
	}{
		{name: "Successful Send", parseErr: nil, dialErr: nil, wantErr: false},
		{name: "Template Error", parseErr: errors.New("template not found"), dialErr: nil, wantErr: true},
		{name: "Dial Error", parseErr: nil, dialErr: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(MockTemplate)
			dialer := new(MockDialer)

			subject := bytes.NewBufferString("Welcome to Inkpost!")
			plainBody := bytes.NewBufferString("Hello testuser")
			htmlBody := bytes.NewBufferString("<p>Hello testuser</p>")

			parser.On("ParseTemplate", "welcome_email.html", mock.Anything).Return(subject, plainBody, htmlBody, tt.parseErr)
			dialer.On("DialAndSend", mock.Anything).Return(tt.dialErr)

			m := &Mail{
				dialer: dialer,
				parser: parser,
				sender: "Inkpost <no-reply@inkpost.example>",
			}

			err := m.send("testuser@example.com", struct{ Username string }{Username: "testuser"}, "welcome_email.html")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				dialer.AssertCalled(t, "DialAndSend", mock.Anything)
			}
		})
	}
}

func TestSendBuildsMessage(t *testing.T) {
	parser := new(MockTemplate)
	dialer := new(MockDialer)

	parser.On("ParseTemplate", "welcome_email.html", mock.Anything).Return(
		bytes.NewBufferString("Welcome to Inkpost!"),
		bytes.NewBufferString("Hello testuser"),
		bytes.NewBufferString("<p>Hello testuser</p>"),
		nil,
	)

	var sent []*mail.Message
	dialer.On("DialAndSend", mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(0).([]*mail.Message)
	}).Return(nil)

	m := &Mail{
		dialer: dialer,
		parser: parser,
		sender: "Inkpost <no-reply@inkpost.example>",
	}

	err := m.send("testuser@example.com", nil, "welcome_email.html")
	assert.NoError(t, err)
	assert.Len(t, sent, 1)
	assert.Equal(t, []string{"testuser@example.com"}, sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Welcome to Inkpost!"}, sent[0].GetHeader("Subject"))
}
