package modules

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

const (
	moduleHostMissingMessageConstant   = "module host not configured"
	moduleNamesRequiredMessageConstant = "at least one module name must be provided"
	moduleAlreadyActiveMessageConstant = "module already active"
	moduleLoadedMessageConstant        = "module loaded"
	moduleLoadFailedMessageConstant    = "module load failed"
	moduleNameFieldConstant            = "module"
)

// ErrModuleHostNotConfigured indicates the module host dependency was missing.
var ErrModuleHostNotConfigured = errors.New(moduleHostMissingMessageConstant)

// ErrModuleNamesRequired indicates no usable module names were supplied.
var ErrModuleNamesRequired = errors.New(moduleNamesRequiredMessageConstant)

// Dependencies enumerates external collaborators required for module loading.
type Dependencies struct {
	Host   ModuleHost
	Logger *zap.Logger
}

// Service coordinates module load checks and imports through the host.
type Service struct {
	host   ModuleHost
	logger *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Host == nil {
		return nil, ErrModuleHostNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{host: dependencies.Host, logger: logger}, nil
}

// EnsureLoaded checks each named module and imports it when it is not already
// active. Each name receives a single import attempt; a failure is recorded in
// the outcome for that name and does not stop the remaining names.
func (service *Service) EnsureLoaded(executionContext context.Context, moduleNames []string) ([]Outcome, error) {
	sanitizedNames := sanitizeModuleNames(moduleNames)
	if len(sanitizedNames) == 0 {
		return nil, ErrModuleNamesRequired
	}

	outcomes := make([]Outcome, 0, len(sanitizedNames))
	for _, moduleName := range sanitizedNames {
		outcomes = append(outcomes, service.ensureModule(executionContext, moduleName))
	}
	return outcomes, nil
}

func (service *Service) ensureModule(executionContext context.Context, moduleName string) Outcome {
	isActive, queryError := service.host.IsActive(executionContext, moduleName)
	if queryError != nil {
		return service.failedOutcome(moduleName, queryError)
	}
	if isActive {
		service.logger.Info(moduleAlreadyActiveMessageConstant, zap.String(moduleNameFieldConstant, moduleName))
		return Outcome{ModuleName: moduleName, State: LoadStateAlreadyActive}
	}

	if activationError := service.host.Activate(executionContext, moduleName); activationError != nil {
		return service.failedOutcome(moduleName, activationError)
	}

	service.logger.Info(moduleLoadedMessageConstant, zap.String(moduleNameFieldConstant, moduleName))
	return Outcome{ModuleName: moduleName, State: LoadStateLoaded}
}

func (service *Service) failedOutcome(moduleName string, cause error) Outcome {
	failure := CapabilityLoadError{ModuleName: moduleName, Cause: cause}
	service.logger.Warn(moduleLoadFailedMessageConstant, zap.String(moduleNameFieldConstant, moduleName), zap.Error(failure))
	return Outcome{ModuleName: moduleName, State: LoadStateFailed, FailureCause: failure}
}

// FailedOutcomes filters load outcomes down to the failed ones.
func FailedOutcomes(outcomes []Outcome) []Outcome {
	failed := make([]Outcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.State == LoadStateFailed {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// sanitizeModuleNames trims names, drops empties, and removes case-insensitive
// duplicates while preserving order.
func sanitizeModuleNames(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	seenNames := make(map[string]struct{}, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		normalized := strings.ToLower(trimmed)
		if _, seen := seenNames[normalized]; seen {
			continue
		}
		seenNames[normalized] = struct{}{}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
