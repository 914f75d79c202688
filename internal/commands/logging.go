package commands

import (
	"strings"

	"github.com/goliatone/go-blogkit/internal/logging"
	"github.com/goliatone/go-blogkit/pkg/interfaces"
)

// CommandLogger returns the logger for the command group module, nested
// under the blogkit.commands namespace.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		return logging.CommandsLogger(provider)
	}
	logger := logging.ModuleLogger(provider, logging.CommandsModule+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
