// Package doctest starts throwaway document store instances for
// integration tests. Its helpers are only compiled with the integration
// build tag.
package doctest
