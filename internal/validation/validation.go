// Package validation checks user input before it reaches the network.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"todo/internal/service"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// instance returns the shared validator with custom rules registered.
func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("notblank", NotBlank); err != nil {
			panic(err)
		}
	})
	return validate
}

// NotBlank fails for strings that are empty or whitespace only.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Draft validates a new task.
func Draft(d service.Draft) error {
	return translate(instance().Struct(d))
}

// Fields validates the fields present in a partial update.
func Fields(f service.Fields) error {
	if f.Empty() {
		return fmt.Errorf("%w: nothing to update", service.ErrValidation)
	}
	v := instance()
	if f.Title != nil {
		if err := v.Var(*f.Title, "notblank,max=200"); err != nil {
			return fieldError("title", err)
		}
	}
	if f.Priority != nil {
		if err := v.Var(string(*f.Priority), "oneof=low medium high"); err != nil {
			return fieldError("priority", err)
		}
	}
	if f.Deadline != nil {
		if err := v.Var(*f.Deadline, "omitempty,datetime=2006-01-02"); err != nil {
			return fieldError("deadline", err)
		}
	}
	if f.Category != nil {
		if err := v.Var(*f.Category, "max=100"); err != nil {
			return fieldError("category", err)
		}
	}
	if f.Assignee != nil {
		if err := v.Var(*f.Assignee, "notblank"); err != nil {
			return fieldError("assignee", err)
		}
	}
	return nil
}

// Registration is the input of a register request.
type Registration struct {
	Username string `validate:"notblank"`
	Email    string `validate:"omitempty,email"`
	Password string `validate:"notblank"`
}

// Register validates a registration request.
func Register(r Registration) error {
	return translate(instance().Struct(r))
}

func fieldError(name string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", service.ErrValidation, describe(name, verrs[0]))
	}
	return fmt.Errorf("%w: %s: %v", service.ErrValidation, name, err)
}

// translate turns validator output into an ErrValidation describing the
// first failing field.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s", service.ErrValidation, describe(strings.ToLower(fe.Field()), fe))
	}
	return fmt.Errorf("%w: %v", service.ErrValidation, err)
}

func describe(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return name + " required"
	case "oneof":
		return fmt.Sprintf("invalid %s: %v (want one of: %s)", name, fe.Value(), fe.Param())
	case "datetime":
		return fmt.Sprintf("invalid %s: %v (want YYYY-MM-DD)", name, fe.Value())
	case "email":
		return fmt.Sprintf("invalid %s: %v", name, fe.Value())
	case "max":
		return fmt.Sprintf("%s too long (max %s)", name, fe.Param())
	}
	return fmt.Sprintf("invalid %s", name)
}
