// Package modeladapter provides the embeddable base for REST backend clients.
//
// It contains:
//   - [ModelAdapter] with request building, auth header handling, custom headers and JSON GET/POST helpers
//   - [StatusError] for non-2xx responses, carrying the status code and body
//   - [github.com/germanamz/scorer/pkg/modeladapter/usage]: thread-safe token usage tracker
//
// API keys can be fixed on the adapter or passed per call, so a client can be
// shared while the current key is read fresh for every operation. This package
// contains no backend-specific code.
package modeladapter
