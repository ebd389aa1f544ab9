package layout

// collapseMargins returns the collapsed margin value for two adjoining vertical margins.
// Per CSS 2.1: both positive => max, both negative => most negative, mixed => sum.
func collapseMargins(margin1, margin2 float64) float64 {
	if margin1 >= 0 && margin2 >= 0 {
		return max(margin1, margin2)
	}
	if margin1 < 0 && margin2 < 0 {
		return min(margin1, margin2)
	}
	return margin1 + margin2
}

// MarginCollapseInfo accumulates adjoining block-axis margins while a block
// lays out its children in order.
type MarginCollapseInfo struct {
	pending    float64
	hasPending bool
}

// AdjoinMargin collapses m into the pending margin.
func (m *MarginCollapseInfo) AdjoinMargin(margin float64) {
	if !m.hasPending {
		m.pending = margin
		m.hasPending = true
		return
	}
	m.pending = collapseMargins(m.pending, margin)
}

// Pending returns the collapsed margin accumulated so far.
func (m *MarginCollapseInfo) Pending() float64 { return m.pending }

// Flush returns the collapsed margin and starts a new run. Clearance and
// in-flow content end a run.
func (m *MarginCollapseInfo) Flush() float64 {
	p := m.pending
	m.pending = 0
	m.hasPending = false
	return p
}
