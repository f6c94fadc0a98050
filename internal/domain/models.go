package domain

// ListSpec describes one selectable list shown by the terminal front-end
type ListSpec struct {
	Name   string   `toml:"name"`
	Items  []string `toml:"items"`
	Ignore []string `toml:"ignore,omitempty"` // item labels rendered but excluded from selection
}

// Eligible returns the items that are not ignored, in order
func (l ListSpec) Eligible() []string {
	ignored := make(map[string]bool, len(l.Ignore))
	for _, name := range l.Ignore {
		ignored[name] = true
	}
	out := make([]string, 0, len(l.Items))
	for _, name := range l.Items {
		if !ignored[name] {
			out = append(out, name)
		}
	}
	return out
}

// IsIgnored reports whether the named item is excluded from selection
func (l ListSpec) IsIgnored(item string) bool {
	for _, name := range l.Ignore {
		if name == item {
			return true
		}
	}
	return false
}
