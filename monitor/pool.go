package monitor

// pool is the stack of free watchpoint numbers. The lowest number is on top
// after a reset, and a released number is the next one handed out.
type pool struct {
	Data []int
}

func (p *pool) Push(no int) {
	p.Data = append(p.Data, no)
}

func (p *pool) Pop() (no int, ok bool) {
	no, ok = p.Peek()
	if ok {
		p.Data = p.Data[:len(p.Data)-1]
	}
	return
}

func (p *pool) Empty() bool {
	return len(p.Data) == 0
}

func (p *pool) Peek() (no int, ok bool) {
	if p.Empty() {
		return
	}

	return p.Data[len(p.Data)-1], true
}

// Reset the pool to hold the numbers [0, limit).
func (p *pool) Reset(limit int) {
	p.Data = p.Data[:0]
	for no := limit - 1; no >= 0; no-- {
		p.Push(no)
	}
}
