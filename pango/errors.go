// SPDX-License-Identifier: Unlicense OR MIT

package pango

import "log"

// warnf reports a recoverable contract violation or external-resource
// failure. The core never aborts on these: it logs and degrades (spec.md
// §7 "Propagation policy"). None of the retrieved example repositories
// pull in a structured logging library, so this stays on the standard
// library's log package rather than inventing a dependency the corpus
// never reaches for.
func warnf(format string, args ...any) {
	log.Printf("pango: "+format, args...)
}
