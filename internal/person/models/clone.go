package models

import "time"

// Clone returns a deep copy so stores never share mutable state with callers.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	c := *p
	if p.MaritalStatus != nil {
		s := *p.MaritalStatus
		c.MaritalStatus = &s
	}
	c.Addresses = make([]*Address, len(p.Addresses))
	for i, a := range p.Addresses {
		c.Addresses[i] = a.Clone()
	}
	return &c
}

func (a *Address) Clone() *Address {
	if a == nil {
		return nil
	}
	c := *a
	c.ValidTo = cloneTime(a.ValidTo)
	c.SupersededAt = cloneTime(a.SupersededAt)
	if a.PremiumRegionID != nil {
		r := *a.PremiumRegionID
		c.PremiumRegionID = &r
	}
	return &c
}

func (h *PersonHistoryEntry) Clone() *PersonHistoryEntry {
	if h == nil {
		return nil
	}
	c := *h
	c.ValidTo = cloneTime(h.ValidTo)
	c.SupersededAt = cloneTime(h.SupersededAt)
	if h.MaritalStatus != nil {
		s := *h.MaritalStatus
		c.MaritalStatus = &s
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

