package entitlement

import "time"

// MonthStart returns the first instant of t's calendar month in UTC.
// Counters use created_at >= MonthStart(now): a row written at exactly
// 00:00:00.000 on the 1st belongs to the new month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthlyWindow reports whether a resource is counted per calendar month.
// Clients and library items are lifetime caps.
func monthlyWindow(a Action) bool {
	switch a {
	case CreateBrief, ReceiveInquiry:
		return true
	}
	return false
}
