// Package types defines the cookie jar entities: cookie types, cookies,
// identifier generators, the Jar container, the count-only Tally, and the
// standard error values returned by their operations.
package types
