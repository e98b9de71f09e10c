// Package service holds the relay's business operations, sitting
// between the HTTP handlers and the generation client.
package service
