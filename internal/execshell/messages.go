package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
)

const (
	listPoliciesCmdletNameConstant  = "Get-GPO"
	linkReportCmdletNameConstant    = "Get-GPOReport"
	moduleQueryCmdletNameConstant   = "Get-Module"
	moduleImportCmdletNameConstant  = "Import-Module"
	domainParameterNameConstant     = "-Domain"
	nameParameterNameConstant       = "-Name"
	guidParameterNameConstant       = "-Guid"
	unknownTargetLabelConstant      = "unknown"
	parameterValueQuoteRuneConstant = '"'
)

const (
	listPoliciesStartTemplateConstant            = "Retrieving Group Policy objects for %s"
	listPoliciesSuccessTemplateConstant          = "Retrieved Group Policy objects for %s"
	listPoliciesFailureTemplateConstant          = "Failed to retrieve Group Policy objects for %s (exit code %d%s)"
	listPoliciesExecutionFailureTemplateConstant = "Unable to retrieve Group Policy objects for %s: %s"
	linkReportStartTemplateConstant              = "Fetching link report for policy %s in %s"
	linkReportSuccessTemplateConstant            = "Fetched link report for policy %s in %s"
	linkReportFailureTemplateConstant            = "Failed to fetch link report for policy %s in %s (exit code %d%s)"
	linkReportExecutionFailureTemplateConstant   = "Unable to fetch link report for policy %s in %s: %s"
	moduleQueryStartTemplateConstant             = "Checking whether module %s is loaded"
	moduleQuerySuccessTemplateConstant           = "Checked module %s"
	moduleQueryFailureTemplateConstant           = "Failed to check module %s (exit code %d%s)"
	moduleQueryExecutionFailureTemplateConstant  = "Unable to check module %s: %s"
	moduleImportStartTemplateConstant            = "Importing module %s"
	moduleImportSuccessTemplateConstant          = "Imported module %s"
	moduleImportFailureTemplateConstant          = "Failed to import module %s (exit code %d%s)"
	moduleImportExecutionFailureTemplateConstant = "Unable to import module %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	script := formatter.extractScript(command)
	cmdletName := formatter.leadingCmdlet(script)

	switch cmdletName {
	case linkReportCmdletNameConstant:
		policyIdentifier := formatter.parameterValue(script, guidParameterNameConstant)
		domainName := formatter.parameterValue(script, domainParameterNameConstant)
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(linkReportStartTemplateConstant, policyIdentifier, domainName),
			fmt.Sprintf(linkReportSuccessTemplateConstant, policyIdentifier, domainName),
			linkReportFailureTemplateConstant, linkReportExecutionFailureTemplateConstant,
			policyIdentifier, domainName)
	case listPoliciesCmdletNameConstant:
		domainName := formatter.parameterValue(script, domainParameterNameConstant)
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(listPoliciesStartTemplateConstant, domainName),
			fmt.Sprintf(listPoliciesSuccessTemplateConstant, domainName),
			listPoliciesFailureTemplateConstant, listPoliciesExecutionFailureTemplateConstant,
			domainName)
	case moduleQueryCmdletNameConstant:
		moduleName := formatter.parameterValue(script, nameParameterNameConstant)
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(moduleQueryStartTemplateConstant, moduleName),
			fmt.Sprintf(moduleQuerySuccessTemplateConstant, moduleName),
			moduleQueryFailureTemplateConstant, moduleQueryExecutionFailureTemplateConstant,
			moduleName)
	case moduleImportCmdletNameConstant:
		moduleName := formatter.parameterValue(script, nameParameterNameConstant)
		return formatter.renderStage(stage, result, failure,
			fmt.Sprintf(moduleImportStartTemplateConstant, moduleName),
			fmt.Sprintf(moduleImportSuccessTemplateConstant, moduleName),
			moduleImportFailureTemplateConstant, moduleImportExecutionFailureTemplateConstant,
			moduleName)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) renderStage(stage messageStage, result ExecutionResult, failure error, startMessage string, successMessage string, failureTemplate string, executionFailureTemplate string, targets ...any) string {
	switch stage {
	case messageStageStart:
		return startMessage
	case messageStageSuccess:
		return successMessage
	case messageStageFailure:
		failureArguments := append(append([]any{}, targets...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(failureTemplate, failureArguments...)
	case messageStageExecutionFailure:
		executionFailureArguments := append(append([]any{}, targets...), formatter.describeFailure(failure))
		return fmt.Sprintf(executionFailureTemplate, executionFailureArguments...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

// extractScript returns the PowerShell script payload, which is supplied as
// the argument following the -Command flag.
func (formatter CommandMessageFormatter) extractScript(command ShellCommand) string {
	arguments := command.Details.Arguments
	for index := 0; index < len(arguments)-1; index++ {
		if strings.TrimSpace(arguments[index]) == powershellCommandFlagConstant {
			return arguments[index+1]
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) leadingCmdlet(script string) string {
	fields := strings.Fields(script)
	if len(fields) == 0 {
		return emptyStringConstant
	}
	return fields[0]
}

// parameterValue extracts the quoted or bare value following a PowerShell
// parameter such as -Domain or -Name.
func (formatter CommandMessageFormatter) parameterValue(script string, parameterName string) string {
	fields := strings.Fields(script)
	for index := 0; index < len(fields)-1; index++ {
		if fields[index] != parameterName {
			continue
		}
		value := strings.Trim(fields[index+1], string(parameterValueQuoteRuneConstant))
		if len(value) == 0 {
			return unknownTargetLabelConstant
		}
		return value
	}
	return unknownTargetLabelConstant
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	return commandLabel
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}
