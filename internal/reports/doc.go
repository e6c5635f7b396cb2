// Package reports renders audit results into tabular artifacts on disk.
package reports
