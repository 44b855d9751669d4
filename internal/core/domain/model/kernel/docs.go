// Package kernel contains the shared value objects of the transit domain:
// UUID identifiers, administrative District names, and delivery Otp codes.
//
// Every type in this package follows the guarded-constructor pattern: the
// zero value is invalid, construction goes through a validating factory
// function, and Validate reports improper construction. Values are immutable
// and safe for concurrent use.
package kernel
