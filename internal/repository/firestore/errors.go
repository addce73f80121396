package firestore

import (
	"errors"
	"fmt"

	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"docit/internal/domain"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func wrapGetError(err error, what, id string) error {
	if isNotFound(err) {
		return fmt.Errorf("%s %s: %w", what, id, domain.ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", what, err)
}

func wrapWriteError(err error, op, what, id string) error {
	if isNotFound(err) {
		return fmt.Errorf("%s %s %s: %w", op, what, id, domain.ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", op, what, err)
}

// done reports whether err ends a document iterator
func done(err error) bool {
	return errors.Is(err, iterator.Done)
}
