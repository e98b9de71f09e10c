// Package middleware holds the echo middleware chain of the relay:
// request ids, request-scoped loggers, access logging, panic recovery,
// security headers, CORS, rate limiting and the global error handler.
package middleware
