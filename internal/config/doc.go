// Package config loads the service configuration from a dotenv file,
// an optional config.yaml and GENOPS_* environment variables, and validates
// it before any component is constructed. The signing secret and database
// URL have no defaults and must be supplied by the deployment.
package config
