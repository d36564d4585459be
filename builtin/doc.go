// Package builtin provides reference implementations of the motion,
// operator, text-object, and action registries the interpreter consumes.
//
// Hosts with their own editing engine can ignore this package and supply
// registries over that engine instead; the interpreter depends only on the
// lookup contract. The implementations here work on plain line slices and
// whole-content updates, which keeps them engine-agnostic and makes the
// interpreter testable end to end.
package builtin
