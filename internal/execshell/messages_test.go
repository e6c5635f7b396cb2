package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/adx/internal/execshell"
)

func powershellCommandForScript(script string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandPowerShell,
		Details: execshell.CommandDetails{
			Arguments: []string{"-NoProfile", "-NonInteractive", "-Command", script},
		},
	}
}

func TestCommandMessageFormatterDescribesKnownCmdlets(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	testCases := []struct {
		name            string
		script          string
		expectedStart   string
		expectedSuccess string
	}{
		{
			name:            "list_policies",
			script:          `Get-GPO -All -Domain "corp.example.com" | ConvertTo-Json -Compress`,
			expectedStart:   "Retrieving Group Policy objects for corp.example.com",
			expectedSuccess: "Retrieved Group Policy objects for corp.example.com",
		},
		{
			name:            "link_report",
			script:          `Get-GPOReport -Guid "11111111-2222-3333-4444-555555555555" -Domain "corp.example.com" -ReportType Xml`,
			expectedStart:   "Fetching link report for policy 11111111-2222-3333-4444-555555555555 in corp.example.com",
			expectedSuccess: "Fetched link report for policy 11111111-2222-3333-4444-555555555555 in corp.example.com",
		},
		{
			name:            "module_query",
			script:          `Get-Module -Name "GroupPolicy"`,
			expectedStart:   "Checking whether module GroupPolicy is loaded",
			expectedSuccess: "Checked module GroupPolicy",
		},
		{
			name:            "module_import",
			script:          `Import-Module -Name "GroupPolicy" -ErrorAction Stop`,
			expectedStart:   "Importing module GroupPolicy",
			expectedSuccess: "Imported module GroupPolicy",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			command := powershellCommandForScript(testCase.script)
			require.Equal(testInstance, testCase.expectedStart, formatter.BuildStartedMessage(command))
			require.Equal(testInstance, testCase.expectedSuccess, formatter.BuildSuccessMessage(command))
		})
	}
}

func TestCommandMessageFormatterFailureMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	command := powershellCommandForScript(`Get-GPO -All -Domain "corp.example.com"`)

	failureMessage := formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 1, StandardError: "domain unreachable"})
	require.Equal(testInstance, "Failed to retrieve Group Policy objects for corp.example.com (exit code 1: domain unreachable)", failureMessage)

	executionFailureMessage := formatter.BuildExecutionFailureMessage(command, errors.New("powershell not found"))
	require.Equal(testInstance, "Unable to retrieve Group Policy objects for corp.example.com: powershell not found", executionFailureMessage)
}

func TestCommandMessageFormatterGenericFallback(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	command := powershellCommandForScript(`Write-Output "hello"`)

	require.Equal(testInstance, `Running powershell -NoProfile -NonInteractive -Command Write-Output "hello"`, formatter.BuildStartedMessage(command))
}
