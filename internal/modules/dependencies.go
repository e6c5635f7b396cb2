package modules

import "context"

// ModuleHost abstracts the PowerShell session hosting importable modules.
type ModuleHost interface {
	IsActive(executionContext context.Context, moduleName string) (bool, error)
	Activate(executionContext context.Context, moduleName string) error
}
