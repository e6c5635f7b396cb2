// Package ui renders shell command lifecycle events for human operators,
// bridging execshell observers to zap console logging.
package ui
