// Package utils hosts configuration loading and logger construction shared by
// every adx command.
package utils
