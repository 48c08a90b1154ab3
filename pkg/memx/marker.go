package memx

// Marker is the summarized-through marker persisted with a summary record.
//
// Historical encoding quirk: the marker stores the covered dropped-message
// count PLUS ONE, so a marker of 0 or 1 both mean "nothing summarized yet".
// Treat the value as opaque and funnel every comparison through
// CoveredCount / MarkerForCount; decoding it by hand invites off-by-one
// regressions.
type Marker int

// MarkerForCount encodes the number of dropped messages a summary covers.
func MarkerForCount(count int) Marker {
	if count < 0 {
		count = 0
	}
	return Marker(count + 1)
}

// CoveredCount decodes the marker into the number of dropped messages
// already reflected in the stored summary. Markers of one or less decode to
// zero coverage.
func (m Marker) CoveredCount() int {
	if m <= 1 {
		return 0
	}
	return int(m) - 1
}
