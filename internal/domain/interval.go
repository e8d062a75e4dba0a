package domain

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant. Touching endpoints do not
// overlap: a booking ending at 11:00 coexists with one starting at 11:00.
//
// Every conflict check in the system goes through this predicate; the
// repository layer mirrors the same strict inequalities in SQL.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
