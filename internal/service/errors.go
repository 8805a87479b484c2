package service

import (
	"context"
	"errors"
	"log/slog"

	"go-catalog-ws/pkg/database"
)

// Error kinds. Match them with errors.Is.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrStorageFault        = errors.New("storage fault")
)

const opaqueStorageMessage = "unexpected error, check server logs"

// Error carries a client-safe message for one of the error kinds above.
// The underlying storage error is reachable through Unwrap but never
// appears in Error().
type Error struct {
	Kind    error
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// errEmptySlug rejects titles and slugs that normalize to nothing
var errEmptySlug = &Error{Kind: ErrConstraintViolation, Message: "slug must contain at least one letter or digit"}

// mapLookupError maps err for operations that target one product, where a
// missing row is reported as NotFound with notFoundMessage.
func (s *productService) mapLookupError(ctx context.Context, operation, notFoundMessage string, err error) error {
	if database.Classify(err) == database.FaultNotFound {
		return &Error{Kind: ErrProductNotFound, Message: notFoundMessage, cause: err}
	}
	return s.mapStorageError(ctx, operation, err)
}

// mapStorageError turns a raw storage error into the catalog's error taxonomy.
// Storage faults are logged with full detail here.
func (s *productService) mapStorageError(ctx context.Context, operation string, err error) error {
	switch database.Classify(err) {
	case database.FaultNone:
		return nil
	case database.FaultDuplicateKey:
		return &Error{Kind: ErrConstraintViolation, Message: database.Detail(err), cause: err}
	default:
		s.logger.ErrorContext(ctx, "Catalog storage fault",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return &Error{Kind: ErrStorageFault, Message: opaqueStorageMessage, cause: err}
	}
}

// resultLabel names the outcome of an operation for metrics
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrProductNotFound):
		return "not_found"
	case errors.Is(err, ErrConstraintViolation):
		return "constraint_violation"
	default:
		return "failure"
	}
}
