package entities

// DrugResolution is the outcome of normalizing a free-text medicine name.
// Either the canonical identifier pair is set, or Suggestions carries ranked
// spelling alternatives; never both. Instances are immutable once created.
type DrugResolution struct {
	RxCUI       string   `json:"rxcui,omitempty"`
	Name        string   `json:"name,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Resolved reports whether the input matched a canonical drug concept
func (r *DrugResolution) Resolved() bool {
	return r.RxCUI != ""
}
