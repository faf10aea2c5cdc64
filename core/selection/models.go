package selection

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jkatembo/kambi/core"
)

// Selection is a student's pending enrollment (cart entry) for a class.
// The (ClassID, UserEmail) pair is unique: a user selects a class at most once.
type Selection struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"class_id"`
	ClassName string    `json:"class_name"`
	Image     string    `json:"image,omitempty"`
	Price     float64   `json:"price"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewSelection contains information needed to add a class to a user's cart.
type NewSelection struct {
	ClassID   string  `json:"class_id" validate:"required"`
	ClassName string  `json:"class_name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" validate:"gte=0"`
	UserEmail string  `json:"user_email" validate:"required,email"`
}

func (ns *NewSelection) Validate(validate *validator.Validate) error {
	ns.ClassID = core.CleanString(ns.ClassID)
	ns.ClassName = core.CleanString(ns.ClassName)
	ns.UserEmail = core.CleanString(ns.UserEmail, true /* lower */)
	return validate.Struct(ns)
}
