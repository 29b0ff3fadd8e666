// Package almanac converts Gregorian instants into the lunisolar calendar
// view served by the /time endpoint: lunar year, month and day, the zodiac
// animal of the lunar year, and the index of the current solar term.
//
// Solar term start instants are a fixed published table for 2025. Each term
// covers the half-open interval from its own start to the next term's start,
// with the final term running to the following January 1st. Instants the
// table does not cover fall back to index 0.
package almanac
