package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().Str("type", "welcome").Str("to", p.To).Logger()
	log.Info().Msg("processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(p.To, p.FirstName, p.Username); err != nil {
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("sent welcome email")
	return nil
}

func (j *JobService) handleTransactionNotificationTask(ctx context.Context, t *asynq.Task) error {
	var p TransactionNotificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal transaction payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", p.Kind).
		Int64("transaction_id", p.TransactionID).
		Str("to", p.To).
		Logger()
	log.Info().Msg("processing transaction notification task")

	var err error
	switch p.Kind {
	case "transfer":
		err = j.mailer.SendTransferReceivedEmail(p.To, p.RecipientName, p.SenderName, p.Amount, p.Description)
	case "offer":
		err = j.mailer.SendOfferReceivedEmail(p.To, p.RecipientName, p.SenderName, p.Amount, p.Description)
	default:
		return fmt.Errorf("unknown transaction notification kind %q: %w", p.Kind, asynq.SkipRetry)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to send transaction notification")
		return err
	}

	log.Info().Msg("sent transaction notification")
	return nil
}
