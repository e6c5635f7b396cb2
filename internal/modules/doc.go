// Package modules ensures the PowerShell modules required by adx commands
// are imported into the host session before they are used.
package modules
