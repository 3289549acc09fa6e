package oracle

import "sync/atomic"

// Holder is the process-wide slot for the active price feed. Rotation via
// the admin usecase swaps the client atomically; readers always see either
// the old or the new feed, never a torn value.
type Holder struct {
	v atomic.Value // PriceOracle
}

type slot struct{ oc PriceOracle }

func NewHolder(oc PriceOracle) *Holder {
	h := &Holder{}
	h.v.Store(slot{oc: oc})
	return h
}

func (h *Holder) Load() PriceOracle {
	s, _ := h.v.Load().(slot)
	return s.oc
}

func (h *Holder) Store(oc PriceOracle) { h.v.Store(slot{oc: oc}) }
