package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hanzawa-dev/gobbs/internal/domain"
)

// Kind classifies a single field violation.
type Kind string

const (
	Empty   Kind = "EMPTY"
	TooLong Kind = "TOO_LONG"
)

type FieldViolation struct {
	Field string
	Kind  Kind
}

// PostViolations carries every violation found in one submission.
// It implements error so it can travel through ordinary error returns.
type PostViolations struct {
	Violations []FieldViolation
}

func (e *PostViolations) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s:%s", v.Field, v.Kind)
	}
	return "invalid post: " + strings.Join(parts, ", ")
}

// Field returns the violation kind for a field, if any.
func (e *PostViolations) Field(name string) (Kind, bool) {
	for _, v := range e.Violations {
		if v.Field == name {
			return v.Kind, true
		}
	}
	return "", false
}

type postInput struct {
	Name    string `validate:"notblank,max=32"`
	Message string `validate:"notblank,max=1000"`
}

type PostValidator struct {
	validate *validator.Validate
}

func NewPostValidator() *PostValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// "required" passes whitespace-only strings, the board rejects those too
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}
	return &PostValidator{validate: v}
}

// Post checks name and message against the submission rules. All violations
// are collected before reporting; nil means the submission is acceptable.
func (pv *PostValidator) Post(name, message string) *PostViolations {
	input := postInput{Name: name, Message: message}
	err := pv.validate.Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// validator only returns InvalidValidationError for non-struct input
		panic(err)
	}

	out := &PostViolations{}
	for _, fe := range verrs {
		out.Violations = append(out.Violations, FieldViolation{
			Field: fieldName(fe.Field()),
			Kind:  violationKind(fe.Tag()),
		})
	}
	return out
}

func fieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Message":
		return "message"
	}
	return strings.ToLower(structField)
}

func violationKind(tag string) Kind {
	if tag == "max" {
		return TooLong
	}
	return Empty
}

// Limits reported to templates so forms can mirror server-side rules.
func Limits() (nameMax, messageMax int) {
	return domain.NameMaxLen, domain.MessageMaxLen
}
