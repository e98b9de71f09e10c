// Package errs defines the error shape the relay returns to its callers.
//
// Local validation reports and failures of the generation API are both
// rendered as an HTTPError, so clients only parse one JSON body.
package errs
