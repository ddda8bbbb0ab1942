// Package job runs background work on asynq: e-mails that must not hold up
// the HTTP request that caused them.
package job

import (
	"github.com/deppfellow/fefu-exchange/internal/config"
	"github.com/deppfellow/fefu-exchange/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer is what the task handlers need from the e-mail client.
type Mailer interface {
	SendWelcomeEmail(to, firstName, username string) error
	SendTransferReceivedEmail(to, recipientName, senderName, amount, description string) error
	SendOfferReceivedEmail(to, recipientName, requesterName, amount, description string) error
}

// JobService owns the asynq client used to enqueue tasks and the server
// that processes them.
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	mailer Mailer
	logger *zerolog.Logger
}

// NewJobService connects to the Redis in cfg. Queue weights give critical
// tasks the larger share of the workers.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			QueueCritical: 6,
			QueueDefault:  3,
			QueueLow:      1,
		},
	})

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// InitHandlers sets up the dependencies of the task handlers.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskTransactionNotification, j.handleTransactionNotificationTask)
	return mux
}

// Start launches the workers in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for running tasks and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
