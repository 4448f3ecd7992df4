package javadoc

// regionSet tracks the regions opened inside one {@snippet}. Named
// regions are unique; anonymous regions have an empty name.
type regionSet struct {
	names map[string]Span
	order []string
}

// open declares a region. It returns false when the name is already
// open; the earlier declaration is kept.
func (r *regionSet) open(name string, at Span) bool {
	if name != "" {
		if _, ok := r.names[name]; ok {
			return false
		}
		if r.names == nil {
			r.names = make(map[string]Span)
		}
		r.names[name] = at
	}
	r.order = append(r.order, name)
	return true
}

// close forgets name and reports whether it was open. An empty name
// closes the innermost region.
func (r *regionSet) close(name string) bool {
	if name == "" {
		n := len(r.order)
		if n == 0 {
			return false
		}
		delete(r.names, r.order[n-1])
		r.order = r.order[:n-1]
		return true
	}
	if _, ok := r.names[name]; !ok {
		return false
	}
	delete(r.names, name)
	for i := len(r.order) - 1; i >= 0; i-- {
		if r.order[i] == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *regionSet) len() int { return len(r.order) }

// closeAll clears the set and returns the regions that were still
// open, innermost last.
func (r *regionSet) closeAll() []string {
	open := r.order
	r.names = nil
	r.order = nil
	return open
}
