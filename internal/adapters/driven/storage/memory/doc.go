// Package memory provides in-memory implementations of driven port interfaces.
// They back tests, and the settings fallback used when the config file
// cannot be opened, where settings live only for the lifetime of the process.
package memory
