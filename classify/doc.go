// Package classify assigns the semantic shape of a motion: linewise,
// characterwise, or blockwise, and inclusive or exclusive.
//
// Classification comes from fixed membership tables; anything unlisted is
// characterwise-exclusive. Character-find and search motions are always
// inclusive. A forced-kind prefix supplied with an operator target always
// wins over the natural classification.
package classify
