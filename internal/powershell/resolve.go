package powershell

import (
	"go.uber.org/zap"

	"github.com/temirov/adx/internal/execshell"
	"github.com/temirov/adx/internal/ui"
)

// ResolveClient constructs a Client backed by the local PowerShell host. When
// humanReadableLogging is set, command lifecycle events are mirrored through
// the console event logger.
func ResolveClient(logger *zap.Logger, humanReadableLogging bool) (*Client, error) {
	var observers []execshell.CommandEventObserver
	if humanReadableLogging {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
	if executorError != nil {
		return nil, executorError
	}
	return NewClient(shellExecutor)
}
