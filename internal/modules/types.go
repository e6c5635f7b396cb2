package modules

import "fmt"

const (
	capabilityLoadErrorTemplateConstant = "module %s could not be loaded: %v"
)

// LoadState classifies the outcome of a single module load attempt.
type LoadState string

// Load states reported by EnsureLoaded.
const (
	LoadStateAlreadyActive LoadState = "already-active"
	LoadStateLoaded        LoadState = "loaded"
	LoadStateFailed        LoadState = "failed"
)

// Outcome records the load state observed for one module name.
type Outcome struct {
	ModuleName   string
	State        LoadState
	FailureCause error
}

// CapabilityLoadError reports a module that could not be imported into the host.
type CapabilityLoadError struct {
	ModuleName string
	Cause      error
}

// Error describes the failed module load.
func (loadError CapabilityLoadError) Error() string {
	return fmt.Sprintf(capabilityLoadErrorTemplateConstant, loadError.ModuleName, loadError.Cause)
}

// Unwrap exposes the underlying cause.
func (loadError CapabilityLoadError) Unwrap() error {
	return loadError.Cause
}
