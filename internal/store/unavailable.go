package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KingCuz/GrindLink/internal/apperrors"
)

// unavailable stands in for a store whose initialization failed. The server
// keeps running, but every data operation fails fast with the startup error.
type unavailable struct {
	err error
}

// Unavailable returns a Store that deterministically fails every operation
// with an InitializationError carrying the given startup cause.
func Unavailable(err error) Store {
	return &unavailable{err: err}
}

func (s *unavailable) Put(ctx context.Context, collection string, createdAt time.Time, body json.RawMessage) (string, error) {
	return "", &apperrors.InitializationError{Err: s.err}
}

func (s *unavailable) List(ctx context.Context, collection string) ([]Document, error) {
	return nil, &apperrors.InitializationError{Err: s.err}
}
