// Package config manages the RuleKit configuration directory (~/.rulekit/)
// and user settings stored in config.yaml. It wraps Viper for file and
// environment-based configuration and resolves the registry root and default
// link method used by the rest of the CLI.
package config
