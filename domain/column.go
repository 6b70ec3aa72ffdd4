package domain

// Column is a vertical lane on the board. Order defines left-to-right
// position; it is kept dense and zero-based by the reducer.
type Column struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Color    string `json:"color,omitempty"`
	Icon     string `json:"icon,omitempty"`
	WIPLimit *int   `json:"wipLimit,omitempty"`
	Order    int    `json:"order"`
	Hidden   bool   `json:"isHidden"`
	System   bool   `json:"isSystemColumn"`
}

// Tag is a shared label. Tasks embed value copies, so tag edits fan out to
// every task holding the tag.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}
