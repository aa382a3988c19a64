package cli

// focusRegion counts how many inputs inside one row hold focus. Every
// focus change bumps seq so a pending idle tick from an earlier blur is
// recognised as stale when it arrives.
type focusRegion struct {
	count int
	seq   int
}

func (f *focusRegion) enter() {
	f.count++
	f.seq++
}

// leave records a blur and returns the sequence number the idle tick must
// carry to still be current.
func (f *focusRegion) leave() int {
	if f.count > 0 {
		f.count--
	}
	f.seq++
	return f.seq
}

// idle reports whether the tick tagged seq arrived with nothing focused
// and no focus change since it was scheduled.
func (f *focusRegion) idle(seq int) bool {
	return seq == f.seq && f.count == 0
}

func (f *focusRegion) reset() {
	f.count = 0
	f.seq++
}
