package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrUnavailable marca fallas de conexión o timeout contra Mongo; el handler
// lo traduce a 503. Otros errores del driver suben tal cual.
var ErrUnavailable = errors.New("almacén no disponible")

func wrapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
