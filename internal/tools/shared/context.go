package shared

import (
	"hermes/pkg/logger"

	"github.com/google/uuid"
)

// InvocationLogger returns a child logger tagged with the tool name and a
// fresh request id, so concurrent invocations stay distinguishable in logs.
func InvocationLogger(log *logger.Logger, tool string) *logger.Logger {
	return log.With("tool", tool, "request_id", uuid.NewString())
}
