package models

// Clone returns a deep copy so stores never share member slices with callers.
func (h *Household) Clone() *Household {
	if h == nil {
		return nil
	}
	c := *h
	c.Members = make([]*HouseholdMember, len(h.Members))
	for i, m := range h.Members {
		mc := *m
		if m.ValidTo != nil {
			end := *m.ValidTo
			mc.ValidTo = &end
		}
		c.Members[i] = &mc
	}
	return &c
}
