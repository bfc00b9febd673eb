// Package config defines the configuration surface for a database instance
// render: the override shape (Values), the packaged defaults, the merge that
// produces a fully-resolved configuration, and the invariant checks that must
// pass before any manifest is composed.
package config
