package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// shutdownTimeout bounds how long in-flight requests may take after ctx ends.
const shutdownTimeout = 5 * time.Second

// Serve runs app on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}
