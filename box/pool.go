package box

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/tyqn"
)

// ErrPoolExhausted is returned by Alloc when no free slot is left. An
// equation complex enough to trigger this cannot be typeset; callers should
// treat it as fatal for the whole run.
var ErrPoolExhausted = errors.New("out of string registers for boxes")

// Handle identifies a box. The zero Handle is invalid.
type Handle struct {
	slot int
	gen  uint32
}

// None is the invalid handle.
var None = Handle{}

// IsNone is a predicate: is this the invalid handle?
func (h Handle) IsNone() bool {
	return h.slot == 0
}

// Register returns the name of the device string register holding the box's
// rendition.
func (h Handle) Register() string {
	return strconv.Itoa(h.slot)
}

func (h Handle) String() string {
	if h.IsNone() {
		return "box[-]"
	}
	return fmt.Sprintf("box[%d.%d]", h.slot, h.gen)
}

type slot struct {
	inUse    bool
	gen      uint32
	height   tyqn.Vert
	baseline tyqn.Vert
}

// Pool manages the boxes of one translation session. Slot numbers double as
// device register names, so the pool never hands out a slot outside the
// configured register range.
type Pool struct {
	low, high int
	slots     []slot
	used      int
}

// NewPool creates a box pool for the register range of opts.
func NewPool(opts tyqn.Options) *Pool {
	if opts.PoolLow <= 0 || opts.PoolHigh < opts.PoolLow {
		opts.PoolLow, opts.PoolHigh = 11, 99
	}
	return &Pool{
		low:   opts.PoolLow,
		high:  opts.PoolHigh,
		slots: make([]slot, opts.PoolHigh-opts.PoolLow+1),
	}
}

// Alloc reserves the lowest free slot and returns a handle for it, with
// height and baseline zeroed.
func (p *Pool) Alloc() (Handle, error) {
	for i := range p.slots {
		if p.slots[i].inUse {
			continue
		}
		p.slots[i].inUse = true
		p.slots[i].gen++
		p.slots[i].height = 0
		p.slots[i].baseline = 0
		p.used++
		h := Handle{slot: p.low + i, gen: p.slots[i].gen}
		tracer().Debugf("alloc %v, %d in use", h, p.used)
		return h, nil
	}
	tracer().Errorf("box pool exhausted, %d slots in use", p.used)
	return None, ErrPoolExhausted
}

// Free releases the slot of h. Freeing an invalid or stale handle is
// reported but does not stop the translation.
func (p *Pool) Free(h Handle) error {
	s, err := p.lookup(h)
	if err != nil {
		tracer().Errorf("free: %v", err)
		return err
	}
	s.inUse = false
	s.gen++
	p.used--
	tracer().Debugf("free %v, %d in use", h, p.used)
	return nil
}

// Reset releases every slot. Called at the start of each equation.
func (p *Pool) Reset() {
	for i := range p.slots {
		if p.slots[i].inUse {
			p.slots[i].inUse = false
			p.slots[i].gen++
		}
	}
	p.used = 0
}

// InUse returns the number of live boxes.
func (p *Pool) InUse() int {
	return p.used
}

// Height returns the height of a box, or 0 for an invalid handle.
func (p *Pool) Height(h Handle) tyqn.Vert {
	s, err := p.lookup(h)
	if err != nil {
		tracer().Errorf("height: %v", err)
		return 0
	}
	return s.height
}

// Baseline returns the baseline of a box, or 0 for an invalid handle.
// The baseline is the distance from the bottom of the box to the writing
// line, 0 ≤ baseline ≤ height.
func (p *Pool) Baseline(h Handle) tyqn.Vert {
	s, err := p.lookup(h)
	if err != nil {
		tracer().Errorf("baseline: %v", err)
		return 0
	}
	return s.baseline
}

// SetExtent sets height and baseline of a box.
func (p *Pool) SetExtent(h Handle, height, baseline tyqn.Vert) error {
	s, err := p.lookup(h)
	if err != nil {
		tracer().Errorf("set extent: %v", err)
		return err
	}
	if baseline < 0 || baseline > height {
		return fmt.Errorf("box %v: baseline %v outside 0…%v", h, baseline, height)
	}
	s.height = height
	s.baseline = baseline
	return nil
}

// Valid reports whether h names a live box of this pool.
func (p *Pool) Valid(h Handle) bool {
	_, err := p.lookup(h)
	return err == nil
}

func (p *Pool) lookup(h Handle) (*slot, error) {
	if h.slot < p.low || h.slot > p.high {
		return nil, fmt.Errorf("handle %v outside register range %d…%d", h, p.low, p.high)
	}
	s := &p.slots[h.slot-p.low]
	if !s.inUse {
		return nil, fmt.Errorf("handle %v names a free slot", h)
	}
	if s.gen != h.gen {
		return nil, fmt.Errorf("stale handle %v, slot is at generation %d", h, s.gen)
	}
	return s, nil
}
