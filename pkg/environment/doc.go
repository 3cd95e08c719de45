// Package environment names the deployment environments the service knows
// about and carries the active one through request contexts.
package environment
