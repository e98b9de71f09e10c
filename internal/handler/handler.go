// Package handler contains the relay's HTTP handlers and the generic
// bind-validate-handle pipeline they run through.
package handler
