package ai

// Suggestion is one proposed manifest line extracted from free text.
type Suggestion struct {
	// Name is the normalized item name, matching the point-table vocabulary
	// where possible ("sofa", "single bed", ...).
	Name string `json:"name"`

	// Quantity extracted from the text; defaults to 1 when unstated.
	Quantity int `json:"quantity"`

	// Points is the model's load-point guess, used only when the name is
	// absent from the configured point table.
	Points float64 `json:"points"`

	// Note carries anything the admin should double-check (unclear size,
	// disassembly needed, etc.).
	Note string `json:"note,omitempty"`
}
