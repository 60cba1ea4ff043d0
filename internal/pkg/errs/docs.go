// Package errs provides the typed errors shared by the order lifecycle code.
//
// Every type follows one pattern: a sentinel (ErrValueIsInvalid, ...), a
// struct carrying the details, constructors with and without a cause, and an
// Unwrap that returns the sentinel so callers can classify with errors.Is.
//
// The kinds let callers tell bad input from bad references and from collaborator failures:
//   - ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange: bad input, reject before persisting
//   - ObjectNotFound: a referenced id does not exist
//   - VersionIsInvalid: an optimistic concurrency check failed
//   - OperationNotPermitted: the state or the caller's privileges forbid the operation
//   - ExternalCallFailed: a collaborator reported failure; no retry is attempted
package errs
