// Package compose turns a resolved configuration into the ordered set of
// Kubernetes documents for one database instance. Composition is a pure
// function: identical inputs always produce an identical, order-stable
// document sequence, and a configuration that fails validation produces no
// documents at all.
package compose
