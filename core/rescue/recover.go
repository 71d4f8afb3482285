package rescue

import (
	"context"

	"github.com/aperture-data/formschema/core/logger"
)

// Recover runs the cleanups and logs the panic value if the calling
// goroutine is panicking.
func Recover(cleanups ...func()) {
	if r := recover(); r != nil {
		for _, cleanup := range cleanups {
			cleanup()
		}
		logger.Error("recovered from panic: %v", r)
	}
}

// RecoverCtx is Recover for context-carrying call sites.
func RecoverCtx(ctx context.Context, cleanups ...func()) {
	if r := recover(); r != nil {
		for _, cleanup := range cleanups {
			cleanup()
		}
		logger.Error("recovered from panic: %v", r)
	}
}
