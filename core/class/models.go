package class

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jkatembo/kambi/core"
)

// Lifecycle statuses. A class starts pending and is moved to approved or
// denied by an admin; neither decision transitions back to pending.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

type Class struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	InstructorName  string    `json:"instructor_name"`
	InstructorEmail string    `json:"instructor_email"`
	Image           string    `json:"image,omitempty"`
	Price           float64   `json:"price"`
	Seats           int       `json:"seats"`
	EnrolledCount   int       `json:"enrolled_count"`
	Status          string    `json:"status"`
	Feedback        string    `json:"feedback,omitempty"`
	CreatedAt       time.Time `json:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at"` // UTC
}

func (c *Class) IsApproved() bool { return c.Status == StatusApproved }
func (c *Class) IsDenied() bool   { return c.Status == StatusDenied }
func (c *Class) IsPending() bool  { return c.Status == StatusPending }

// NewClass contains information needed to submit a new Class.
// The initial status is never caller-supplied; Create forces it to pending.
type NewClass struct {
	Name            string  `json:"name" validate:"required"`
	InstructorName  string  `json:"instructor_name"`
	InstructorEmail string  `json:"instructor_email" validate:"required,email"`
	Image           string  `json:"image"`
	Price           float64 `json:"price" validate:"gte=0"`
	Seats           int     `json:"seats" validate:"gte=0"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.InstructorName = core.CleanString(nc.InstructorName)
	nc.InstructorEmail = core.CleanString(nc.InstructorEmail, true /* lower */)
	return validate.Struct(nc)
}

// Transition is an admin mutation of a class's lifecycle fields.
// Status and Feedback are applied independently; a status outside
// {approved, denied} is a no-op, not an error.
type Transition struct {
	Status   *string `json:"status"`
	Feedback *string `json:"feedback"`
}

func (t *Transition) Clean() {
	if t.Status != nil {
		s := core.CleanString(*t.Status, true /* lower */)
		t.Status = &s
	}
	if t.Feedback != nil {
		f := core.CleanString(*t.Feedback)
		t.Feedback = &f
	}
}

// DecidedStatus returns the terminal status this transition applies,
// or nil when the status field is absent or unrecognized.
func (t *Transition) DecidedStatus() *string {
	if t.Status != nil && (*t.Status == StatusApproved || *t.Status == StatusDenied) {
		return t.Status
	}
	return nil
}
