package metadata

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidConfiguration matches every InvalidConfigurationError with errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// InvalidConfigurationError is returned when a resolver cannot be built from the current configuration.
type InvalidConfigurationError struct {
	Field   string
	Message string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration field %s: %s", e.Field, e.Message)
}

func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// canceled returns the cancellation error when the caller gave up, or nil when err is an ordinary
// upstream failure. Transport timeouts count as upstream failures.
func canceled(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
