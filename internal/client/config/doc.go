// Package config loads settings for the terminal client. Sources are applied
// in order: defaults, optional JSON file (-c/-config), then flags.
package config
