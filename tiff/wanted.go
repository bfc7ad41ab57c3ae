package tiff

// Wanted is a set of tag names to keep. A nil *Wanted keeps every tag.
type Wanted struct {
	names map[string]struct{}
}

func NewWanted(names ...string) *Wanted {
	w := Wanted{
		names: map[string]struct{}{},
	}
	for _, name := range names {
		w.Put(name)
	}

	return &w
}

func (w *Wanted) Put(name string) {
	w.names[name] = struct{}{}
}

func (w *Wanted) Contains(name string) bool {
	if w == nil {
		return true
	}
	_, ok := w.names[name]
	return ok
}

// Filter returns the tags whose name is wanted. tags is left untouched.
func (w *Wanted) Filter(tags Tags) Tags {
	if w == nil {
		return tags
	}

	filtered := make(Tags, len(w.names))
	for name, v := range tags {
		if w.Contains(name) {
			filtered[name] = v
		}
	}
	return filtered
}
