// Package apperr defines the failure categories of a conversion run and maps
// them to process exit codes. Every error that leaves the app layer is either
// an *Error from this package or a cli.ExitError.
package apperr
