/*
Package errors implements custom error interfaces for the framework.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when absolutely necessary. Errors are registered
with a unique numeric code that is stable across releases and can be safely
returned to a client, while the full error chain (including the stack trace)
stays on the server for logging.

Test on error kinds with the Is method of a registered error, never by
comparing messages:

  if errors.ErrNotFound.Is(err) { ... }
*/
package errors
