// Package prompt inspects the repository at the configured path and prints its
// inline status token for embedding in a shell prompt.
package prompt
