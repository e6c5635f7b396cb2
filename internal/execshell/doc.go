// Package execshell wraps external command execution for the adx CLI. It
// models shell commands as typed values, executes them through a pluggable
// CommandRunner, logs lifecycle events through zap, and notifies optional
// observers so user interfaces can render progress for long directory
// operations.
package execshell
