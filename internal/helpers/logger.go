package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger creates the handler/logger pair used by the delegation
// components. If the provided handler is nil, a default text handler
// is created and grouped under the component name.
//
// Parameters:
//   - handler: The slog.Handler to use, or nil for defaults
//   - name: The name of the component (e.g., "relay", "bridge")
//   - groupName: Optional additional group name within the component
func SetupLogger(handler slog.Handler, name string, groupName string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, nil).WithGroup(name)
	}

	var logger *slog.Logger
	if groupName != "" {
		logger = slog.New(handler.WithGroup(groupName))
	} else {
		logger = slog.New(handler)
	}

	return handler, logger
}
