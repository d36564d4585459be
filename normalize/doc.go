// Package normalize rewrites a parsed command into its canonical,
// executable form.
//
// Normalization is a pure transform: alias shortcuts expand to the
// operator commands they stand for, before- and after-counts fold into one
// effective count, a missing register resolves to the unnamed register,
// and the command is flagged repeatable when it mutates buffer content,
// registers, or enters insert mode. The normalized command is what the
// executor runs and what dot-repeat replays.
package normalize
