// Package gpoaudit classifies Group Policy objects by their link usage and
// recommends an administrative follow-up action for each. Records stream to a
// console observer while they accumulate, and can be exported as a CSV
// artifact.
package gpoaudit
