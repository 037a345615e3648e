package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/exp/rand"

	"github.com/karashiro/inkpost/internal/common"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:     mb,
		m:      NewMailer(host, port, username, password, sender, NewTemplate()),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SendWelcomeEmail consumes user.created events and mails each new user.
func (s *MailService) SendWelcomeEmail() {
	s.consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue, "welcome_email.html", func(body []byte) (string, any, error) {
		var data struct {
			Email    string
			Username string
		}

		if err := json.Unmarshal(body, &data); err != nil {
			return "", nil, err
		}

		return data.Email, struct{ Username string }{Username: data.Username}, nil
	})
}

// SendCommentNotification consumes comment.created events and mails the
// blog's author.
func (s *MailService) SendCommentNotification() {
	s.consume(common.CommentCreatedKey, common.EngagementExchange, common.CommentCreatedQueue, "comment_notification_email.html", func(body []byte) (string, any, error) {
		var data struct {
			Email             string
			BlogTitle         string
			CommenterUsername string
		}

		if err := json.Unmarshal(body, &data); err != nil {
			return "", nil, err
		}

		payload := struct {
			BlogTitle         string
			CommenterUsername string
		}{
			BlogTitle:         data.BlogTitle,
			CommenterUsername: data.CommenterUsername,
		}

		return data.Email, payload, nil
	})
}

// consume drains a queue, decoding each delivery and sending the templated
// email with capped exponential backoff and jitter.
func (s *MailService) consume(key common.BindingKey, exchange common.Exchange, queue common.Queue, templateFile string, decode func(body []byte) (string, any, error)) {
	msgs, err := s.mb.Consume(key, exchange, queue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("queue", string(queue)), slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				s.handleDelivery(msg, templateFile, decode)

			case <-s.ctx.Done():
				s.logger.Info("stopping mail consumer", slog.String("queue", string(queue)))
				return
			}
		}
	}()
}

func (s *MailService) handleDelivery(msg amqp.Delivery, templateFile string, decode func(body []byte) (string, any, error)) {
	recipient, payload, err := decode(msg.Body)
	if err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		msg.Ack(false)
		return
	}

	const maxRetries = 5
	const baseDelay = 500 * time.Millisecond

	var attempt int
	for attempt = 0; attempt < maxRetries; attempt++ {
		err = s.m.send(recipient, payload, templateFile)
		if err == nil {
			s.logger.Info("email sent", slog.String("template", templateFile), slog.String("email", recipient))
			msg.Ack(false)
			return
		}

		delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
		s.logger.Info("delaying email", slog.String("email", recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay))
		time.Sleep(delay)
	}

	s.logger.Error("could not send email", slog.String("template", templateFile), slog.String("email", recipient))
	msg.Ack(false)
}

func (s *MailService) Close() {
	s.cancel()
}
