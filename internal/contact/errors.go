package contact

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Sentinel errors matched with errors.Is by the command layer.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New(config.ErrContactNotFound)
	ErrMissingArgument = errors.New(config.ErrMissingArgument)
)

// ValidationError reports a raw value rejected by a field rule.
type ValidationError struct {
	Kind  FieldKind
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind.errMessage(), e.Value)
}

// Is reports ErrValidation as the kind of every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a name absent from the Directory.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", config.ErrContactNotFound, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// MissingArgumentError reports a command invoked with too few arguments.
// Argument names the first missing one.
type MissingArgumentError struct {
	Argument string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", config.ErrMissingArgument, e.Argument)
}

func (e *MissingArgumentError) Is(target error) bool {
	return target == ErrMissingArgument
}
