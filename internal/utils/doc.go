// Package utils holds the configuration and logging plumbing shared by every
// gitfu command.
//
// ConfigurationLoader layers embedded defaults, configuration files and
// GITFU_ environment variables through Viper. LoggerFactory builds the zap
// logger selected by the common log level and format.
package utils
