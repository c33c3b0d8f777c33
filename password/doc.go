// Package password wraps bcrypt credential hashing behind a small, fixed
// API so the cost factor and minimum-length policy live in one place.
package password
