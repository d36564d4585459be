// Package register provides the named slots that hold yanked and deleted
// text together with its linewise or characterwise type.
//
// The unnamed register `"` is the default destination; named registers a-z
// hold text explicitly, their uppercase forms append; the black hole `_`
// discards writes. The store is safe for concurrent reads so a host status
// line can inspect registers while the interpreter runs.
package register
