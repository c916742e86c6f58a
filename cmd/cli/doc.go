// Package cli constructs the gitfu command-line interface, wiring the Cobra
// command hierarchy, the layered configuration (embedded defaults, config file,
// GITFU_ environment variables, flags), and structured logging.
package cli
