// Package service holds the business rules behind each form: balance
// checks, domain whitelisting, captcha verification and the
// transfer/offer save semantics. Handlers bind and tag-validate input,
// services decide whether it may be saved.
package service

import (
	"context"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/lib/captcha"
	"github.com/deppfellow/fefu-exchange/internal/lib/job"
	"github.com/deppfellow/fefu-exchange/internal/repository"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/hibiken/asynq"
)

// TaskEnqueuer is the part of the asynq client the services use.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Services struct {
	Auth       *AuthService
	Accounts   *AccountService
	Profiles   *ProfileService
	Transfers  *TransferService
	MailClaims *MailClaimService
	TaskBids   *TaskBidService
	Captcha    *captcha.Store
	Job        *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var jobs TaskEnqueuer
	if s.Job != nil {
		jobs = s.Job.Client
	}

	captchaStore := captcha.NewStore(s.Redis, s.Config.Exchange.CaptchaTTL)

	return &Services{
		Auth:       NewAuthService(s.Config.Auth.SecretKey),
		Accounts:   NewAccountService(repos.Accounts, repos.Transactions, jobs, s.Logger),
		Profiles:   NewProfileService(repos.Profiles, repos.Groups, captchaStore),
		Transfers:  NewTransferService(NewRepositoryTransferStore(repos), jobs, s.Logger),
		MailClaims: NewMailClaimService(repos.MailClaims, s.Config.Exchange.InstitutionalDomain),
		TaskBids:   NewTaskBidService(repos.Tasks, repos.TaskBids),
		Captcha:    captchaStore,
		Job:        s.Job,
	}, nil
}

// formErrors accumulates field errors so a form reports every failing
// field at once.
type formErrors struct {
	err *errs.HTTPError
}

func (f *formErrors) add(code, field, message string) {
	if f.err == nil {
		f.err = errs.NewFieldError(code, field, message)
		return
	}
	f.err = f.err.WithFieldError(field, message)
}

func (f *formErrors) errOrNil() error {
	if f.err == nil {
		return nil
	}
	return f.err
}
