package class

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/jkatembo/kambi/core"
)

var (
	// errors
	ErrNotFound = errors.New("class not found")
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		QueryAllClasses(ctx context.Context) ([]Class, error)
		FilterClassesByStatus(ctx context.Context, status string) ([]Class, error)
		FilterClassesByInstructor(ctx context.Context, email string) ([]Class, error)
		GetClassByID(ctx context.Context, id string) (Class, error)
		// UpdateClass applies the non-nil fields only.
		UpdateClass(ctx context.Context, id string, status, feedback *string) (Class, error)
		DeleteClass(ctx context.Context, id string) error
	}

	ServiceInterface interface {
		Create(ctx context.Context, nc NewClass) (Class, error)
		QueryAll(ctx context.Context) ([]Class, error)
		QueryApproved(ctx context.Context) ([]Class, error)
		QueryByInstructor(ctx context.Context, email string) ([]Class, error)
		GetByID(ctx context.Context, id string) (Class, error)
		Transition(ctx context.Context, id string, tr Transition) (Class, error)
		Delete(ctx context.Context, id string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, conf: conf}
}

// Create submits a new class for review. The class always starts pending
// regardless of what the caller sent.
func (svc *Service) Create(ctx context.Context, nc NewClass) (Class, error) {
	now := time.Now().UTC()
	cls := Class{
		Name:            nc.Name,
		InstructorName:  nc.InstructorName,
		InstructorEmail: nc.InstructorEmail,
		Image:           nc.Image,
		Price:           nc.Price,
		Seats:           nc.Seats,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryAllClasses(ctx)
}

func (svc *Service) QueryApproved(ctx context.Context) ([]Class, error) {
	return svc.repo.FilterClassesByStatus(ctx, StatusApproved)
}

func (svc *Service) QueryByInstructor(ctx context.Context, email string) ([]Class, error) {
	return svc.repo.FilterClassesByInstructor(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) GetByID(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClassByID(ctx, id)
}

// Transition applies an admin decision and/or feedback to the class.
// Status and feedback are independent; an unrecognized status leaves the
// status field untouched. The instructor is notified when a decision lands.
func (svc *Service) Transition(ctx context.Context, id string, tr Transition) (Class, error) {
	tr.Clean()
	status := tr.DecidedStatus()

	if status == nil && tr.Feedback == nil {
		return svc.repo.GetClassByID(ctx, id)
	}

	cls, err := svc.repo.UpdateClass(ctx, id, status, tr.Feedback)
	if err != nil {
		return Class{}, err
	}

	if status != nil {
		svc.notifyInstructor(cls)
	}
	return cls, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteClass(ctx, id)
}

func (svc *Service) notifyInstructor(cls Class) {
	if svc.mailSvc == nil || cls.InstructorEmail == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: cls.InstructorName, Address: cls.InstructorEmail}},
		Subject:      fmt.Sprintf("Your class %q has been %s", cls.Name, cls.Status),
		TemplateName: "class-decision",
		TemplateData: cls,
	})
}
