// Package testutil contains helper builders and utilities used across tests
// to reduce boilerplate when constructing core model objects (tasks, sessions,
// agent cards) and capturing emitted events. These helpers are intentionally
// minimal and are not intended for production usage.
package testutil
