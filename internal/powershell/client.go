package powershell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/adx/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant    = "powershell executor not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	requiredValueMessageConstant            = "value required"
	forbiddenQuoteMessageConstant           = "value must not contain quote characters"
	domainFieldNameConstant                 = "domain"
	moduleNameFieldNameConstant             = "module name"
	policyIdentifierFieldNameConstant       = "policy identifier"
	quoteCharactersConstant                 = `"'`

	listPolicyObjectsScriptTemplateConstant = `Get-GPO -All -Domain "%s" | Select-Object @{n='Id';e={$_.Id.ToString()}}, DisplayName | ConvertTo-Json -Compress`
	linkReportScriptTemplateConstant        = `Get-GPOReport -Guid "%s" -Domain "%s" -ReportType Xml`
	moduleQueryScriptTemplateConstant       = `Get-Module -Name "%s"`
	moduleImportScriptTemplateConstant      = `Import-Module -Name "%s" -ErrorAction Stop`

	listPolicyObjectsOperationNameConstant = OperationName("ListPolicyObjects")
	linkReportOperationNameConstant        = OperationName("GetLinkReport")
	moduleQueryOperationNameConstant       = OperationName("IsModuleActive")
	moduleImportOperationNameConstant      = OperationName("ActivateModule")
)

// OperationName describes a named PowerShell workflow supported by the client.
type OperationName string

// PolicyObject identifies a Group Policy object returned by the directory.
type PolicyObject struct {
	Identifier  string
	DisplayName string
}

// PolicyLink describes a single organizational-unit link of a policy object.
type PolicyLink struct {
	Location string
	Enabled  bool
}

// LinkReport aggregates the links of one policy object.
type LinkReport struct {
	Links []PolicyLink
}

// ScriptExecutor is the minimal interface required from execshell.ShellExecutor.
type ScriptExecutor interface {
	ExecutePowerShell(executionContext context.Context, script string) (execshell.ExecutionResult, error)
}

// Client coordinates Group Policy cmdlet invocations through execshell.
type Client struct {
	executor ScriptExecutor
}

// ErrExecutorNotConfigured indicates the client was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for PowerShell operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates the cmdlet output could not be decoded.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying decoding error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient validates the executor dependency and constructs a Client.
func NewClient(executor ScriptExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

type policyObjectPayload struct {
	Identifier  string `json:"Id"`
	DisplayName string `json:"DisplayName"`
}

// ListPolicyObjects retrieves every policy object defined in the domain.
func (client *Client) ListPolicyObjects(executionContext context.Context, domainName string) ([]PolicyObject, error) {
	if validationError := validateScriptValue(domainFieldNameConstant, domainName); validationError != nil {
		return nil, validationError
	}

	script := fmt.Sprintf(listPolicyObjectsScriptTemplateConstant, domainName)
	executionOutput, executionError := client.executor.ExecutePowerShell(executionContext, script)
	if executionError != nil {
		return nil, OperationError{Operation: listPolicyObjectsOperationNameConstant, Cause: executionError}
	}

	payloads, decodeError := decodePolicyObjectPayloads(executionOutput.StandardOutput)
	if decodeError != nil {
		return nil, ResponseDecodingError{Operation: listPolicyObjectsOperationNameConstant, Cause: decodeError}
	}

	policyObjects := make([]PolicyObject, 0, len(payloads))
	for _, payload := range payloads {
		policyObjects = append(policyObjects, PolicyObject{
			Identifier:  strings.TrimSpace(payload.Identifier),
			DisplayName: strings.TrimSpace(payload.DisplayName),
		})
	}
	return policyObjects, nil
}

// decodePolicyObjectPayloads accepts both the array and the bare-object shape
// ConvertTo-Json emits depending on result cardinality.
func decodePolicyObjectPayloads(rawOutput string) ([]policyObjectPayload, error) {
	trimmedOutput := strings.TrimSpace(rawOutput)
	if len(trimmedOutput) == 0 {
		return nil, nil
	}

	var payloads []policyObjectPayload
	arrayDecodeError := json.Unmarshal([]byte(trimmedOutput), &payloads)
	if arrayDecodeError == nil {
		return payloads, nil
	}

	var singlePayload policyObjectPayload
	if singleDecodeError := json.Unmarshal([]byte(trimmedOutput), &singlePayload); singleDecodeError != nil {
		return nil, arrayDecodeError
	}
	return []policyObjectPayload{singlePayload}, nil
}

// GetLinkReport fetches and parses the XML link report of one policy object.
func (client *Client) GetLinkReport(executionContext context.Context, policyIdentifier string, domainName string) (LinkReport, error) {
	if validationError := validateScriptValue(policyIdentifierFieldNameConstant, policyIdentifier); validationError != nil {
		return LinkReport{}, validationError
	}
	if validationError := validateScriptValue(domainFieldNameConstant, domainName); validationError != nil {
		return LinkReport{}, validationError
	}

	script := fmt.Sprintf(linkReportScriptTemplateConstant, policyIdentifier, domainName)
	executionOutput, executionError := client.executor.ExecutePowerShell(executionContext, script)
	if executionError != nil {
		return LinkReport{}, OperationError{Operation: linkReportOperationNameConstant, Cause: executionError}
	}

	linkReport, parseError := parseLinkReport(executionOutput.StandardOutput)
	if parseError != nil {
		return LinkReport{}, ResponseDecodingError{Operation: linkReportOperationNameConstant, Cause: parseError}
	}
	return linkReport, nil
}

// IsActive reports whether the named module is loaded in the PowerShell host.
func (client *Client) IsActive(executionContext context.Context, moduleName string) (bool, error) {
	if validationError := validateScriptValue(moduleNameFieldNameConstant, moduleName); validationError != nil {
		return false, validationError
	}

	script := fmt.Sprintf(moduleQueryScriptTemplateConstant, moduleName)
	executionOutput, executionError := client.executor.ExecutePowerShell(executionContext, script)
	if executionError != nil {
		return false, OperationError{Operation: moduleQueryOperationNameConstant, Cause: executionError}
	}

	return len(strings.TrimSpace(executionOutput.StandardOutput)) > 0, nil
}

// Activate imports the named module into the PowerShell host.
func (client *Client) Activate(executionContext context.Context, moduleName string) error {
	if validationError := validateScriptValue(moduleNameFieldNameConstant, moduleName); validationError != nil {
		return validationError
	}

	script := fmt.Sprintf(moduleImportScriptTemplateConstant, moduleName)
	if _, executionError := client.executor.ExecutePowerShell(executionContext, script); executionError != nil {
		return OperationError{Operation: moduleImportOperationNameConstant, Cause: executionError}
	}
	return nil
}

// validateScriptValue rejects empty values and values that would break out of
// the quoted script parameter.
func validateScriptValue(fieldName string, value string) error {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return InvalidInputError{FieldName: fieldName, Message: requiredValueMessageConstant}
	}
	if strings.ContainsAny(trimmedValue, quoteCharactersConstant) {
		return InvalidInputError{FieldName: fieldName, Message: forbiddenQuoteMessageConstant}
	}
	return nil
}
