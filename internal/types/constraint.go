package types

// Requirement is one PEP 508 dependency specification, e.g.
// `numpy>=1.26; python_version >= "3.9"` or `pkg @ https://host/pkg.whl`.
// URL is set only for direct references, which carry no Specifier.
type Requirement struct {
	Name      string
	Specifier string
	URL       string
	Marker    string
	Source    string
}

// String renders the requirement back into PEP 508 form.
func (r Requirement) String() string {
	if r.URL != "" {
		out := r.Name + " @ " + r.URL
		if r.Marker != "" {
			out += " ; " + r.Marker
		}
		return out
	}
	out := r.Name + r.Specifier
	if r.Marker != "" {
		out += "; " + r.Marker
	}
	return out
}
