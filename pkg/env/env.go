// Package env reads raw process environment values. Structured settings
// live in pkg/config; this is for the few knobs resolved before config
// loads, such as the log format.
package env

import "os"

// Get returns the named variable, falling back when it is unset or
// empty. An empty value is treated the same as an absent one.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
