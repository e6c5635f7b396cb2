// Package powershell drives the Windows PowerShell Group Policy cmdlets
// through execshell. It lists policy objects, fetches per-policy XML link
// reports, and queries or imports PowerShell modules on behalf of the adx
// commands.
package powershell
