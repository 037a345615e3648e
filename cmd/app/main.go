package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/karashiro/inkpost/internal/blogservice"
	"github.com/karashiro/inkpost/internal/commentservice"
	"github.com/karashiro/inkpost/internal/common"
	"github.com/karashiro/inkpost/internal/likeservice"
	"github.com/karashiro/inkpost/internal/mailservice"
	"github.com/karashiro/inkpost/internal/userservice"
)

const version = "1.0.0"

type application struct {
	config         *Config
	logger         *slog.Logger
	userService    *userservice.UserService
	blogService    *blogservice.BlogService
	commentService *commentservice.CommentService
	likeService    *likeservice.LikeService
	mailService    *mailservice.MailService
	broker         *common.MessageBroker
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.NewDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Connect to the message broker and declare the exchanges
	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = common.SetupEngagementExchange(broker)
	if err != nil {
		logger.Error("failed to setup the engagement exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Shared read-through cache
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	// Initialize the services
	app := &application{
		config:         cfg,
		logger:         logger,
		userService:    userservice.NewUserService(db, broker, cache),
		blogService:    blogservice.NewBlogService(db, cache),
		commentService: commentservice.NewCommentService(db, broker, cache, logger),
		likeService:    likeservice.NewLikeService(db, cache),
		broker:         broker,
		mailService:    mailservice.NewMailService(broker, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Port, logger),
	}

	// Start the mail consumers
	app.mailService.SendWelcomeEmail()
	app.mailService.SendCommentNotification()
	defer app.mailService.Close()

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
