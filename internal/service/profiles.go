package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/model"
)

type ProfileStore interface {
	Create(ctx context.Context, p *model.Profile) error
	Update(ctx context.Context, p *model.Profile) error
	GetByAccount(ctx context.Context, accountID int64) (*model.Profile, error)
}

type GroupStore interface {
	List(ctx context.Context) ([]model.Group, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type CaptchaVerifier interface {
	Verify(ctx context.Context, key, answer string) (bool, error)
}

// CaptchaMessage is reported on the captcha field for a wrong, expired or
// reused answer.
const CaptchaMessage = "Неверный ответ"

// InvalidChoiceMessage is reported when a selector value is not among the
// offered choices.
const InvalidChoiceMessage = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."

// ProfileInput holds the fields shared by profile registration and
// editing.
type ProfileInput struct {
	NotifyByEmail          bool
	NotifyAboutNewTasks    bool
	NotifyAboutNewServices bool
	About                  string
	GroupID                *int64
}

// CaptchaAnswer is the response to a challenge issued by GET /captcha.
type CaptchaAnswer struct {
	Key   string
	Value string
}

type ProfileService struct {
	profiles ProfileStore
	groups   GroupStore
	captcha  CaptchaVerifier
}

func NewProfileService(profiles ProfileStore, groups GroupStore, captcha CaptchaVerifier) *ProfileService {
	return &ProfileService{profiles: profiles, groups: groups, captcha: captcha}
}

// Register creates the profile of acting. Nothing is saved unless the
// captcha answer is correct.
func (s *ProfileService) Register(ctx context.Context, acting *model.Account, in ProfileInput, answer CaptchaAnswer) (*model.Profile, error) {
	var fe formErrors

	ok, err := s.captcha.Verify(ctx, answer.Key, answer.Value)
	if err != nil {
		return nil, fmt.Errorf("verifying captcha: %w", err)
	}
	if !ok {
		fe.add(errs.CodeCaptchaFailed, "captcha", CaptchaMessage)
	}

	if err := s.checkGroup(ctx, in.GroupID, &fe); err != nil {
		return nil, err
	}
	if err := fe.errOrNil(); err != nil {
		return nil, err
	}

	profile := &model.Profile{AccountID: acting.ID}
	in.apply(profile)

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Update overwrites the profile of acting.
func (s *ProfileService) Update(ctx context.Context, acting *model.Account, in ProfileInput) (*model.Profile, error) {
	var fe formErrors
	if err := s.checkGroup(ctx, in.GroupID, &fe); err != nil {
		return nil, err
	}
	if err := fe.errOrNil(); err != nil {
		return nil, err
	}

	profile := &model.Profile{AccountID: acting.ID}
	in.apply(profile)

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get returns the profile of acting.
func (s *ProfileService) Get(ctx context.Context, acting *model.Account) (*model.Profile, error) {
	return s.profiles.GetByAccount(ctx, acting.ID)
}

// Groups lists the choices of the group selector.
func (s *ProfileService) Groups(ctx context.Context) ([]model.Group, error) {
	return s.groups.List(ctx)
}

func (s *ProfileService) checkGroup(ctx context.Context, groupID *int64, fe *formErrors) error {
	if groupID == nil {
		return nil
	}
	exists, err := s.groups.Exists(ctx, *groupID)
	if err != nil {
		return err
	}
	if !exists {
		fe.add(errs.CodeInvalidChoice, "group", InvalidChoiceMessage)
	}
	return nil
}

func (in ProfileInput) apply(p *model.Profile) {
	p.NotifyByEmail = in.NotifyByEmail
	p.NotifyAboutNewTasks = in.NotifyAboutNewTasks
	p.NotifyAboutNewServices = in.NotifyAboutNewServices
	p.About = in.About
	p.GroupID = in.GroupID
}
