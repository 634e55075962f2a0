// Package viewmodel holds the UI-independent chart state: which substances are
// shown, which color each one gets and what the hover tooltip says.
package viewmodel

// Visibility is the per-substance show/hide map. Its key set is fixed at
// construction; Toggle is the only mutation.
type Visibility struct {
	order []string
	shown map[string]bool
}

// NewVisibility marks every substance visible, keeping the given order.
func NewVisibility(substances []string) *Visibility {
	v := &Visibility{shown: make(map[string]bool, len(substances))}
	for _, s := range substances {
		if _, dup := v.shown[s]; dup {
			continue
		}
		v.order = append(v.order, s)
		v.shown[s] = true
	}
	return v
}

// Visible reports whether name is currently drawn. Unknown names are not.
func (v *Visibility) Visible(name string) bool {
	if v == nil {
		return false
	}
	return v.shown[name]
}

// Toggle flips name and returns its new state. Unknown names are ignored.
func (v *Visibility) Toggle(name string) bool {
	if v == nil {
		return false
	}
	cur, ok := v.shown[name]
	if !ok {
		return false
	}
	v.shown[name] = !cur
	return !cur
}

// Substances returns every key in load order.
func (v *Visibility) Substances() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.order...)
}

// VisibleSubstances returns the shown keys in load order.
func (v *Visibility) VisibleSubstances() []string {
	if v == nil {
		return nil
	}
	out := make([]string, 0, len(v.order))
	for _, s := range v.order {
		if v.shown[s] {
			out = append(out, s)
		}
	}
	return out
}

// Snapshot copies the current map.
func (v *Visibility) Snapshot() map[string]bool {
	if v == nil {
		return map[string]bool{}
	}
	out := make(map[string]bool, len(v.order))
	for k, b := range v.shown {
		out[k] = b
	}
	return out
}
