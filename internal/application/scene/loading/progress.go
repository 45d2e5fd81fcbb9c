package loading

// Progress is a completion percentage in [0, 100] that never decreases.
type Progress struct {
	total int
	steps int
	done  bool
}

// NewProgress creates a progress over n loads. With no loads it starts
// complete.
func NewProgress(n int) *Progress {
	return &Progress{total: n, done: n <= 0}
}

// Step records one settled load: the value grows by 100/n, clamped at 100.
func (p *Progress) Step() {
	if p.steps < p.total {
		p.steps++
	}
}

// Complete forces the value to 100.
func (p *Progress) Complete() {
	p.done = true
}

// Value returns the percentage.
func (p *Progress) Value() float64 {
	if p.done {
		return 100
	}
	return float64(p.steps) * 100 / float64(p.total)
}

// Done reports whether the value reached 100.
func (p *Progress) Done() bool {
	return p.Value() >= 100
}
