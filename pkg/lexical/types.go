package lexical

// Root is the top-level envelope of a serialized editor document.
type Root struct {
	Root Node `json:"root"`
}

// Node is any node in the editor tree. Fields are a union across node types;
// absent fields stay zero-valued.
type Node struct {
	Type     string `json:"type"`
	Children []Node `json:"children,omitempty"`

	// Text nodes
	Text   string      `json:"text,omitempty"`
	Format interface{} `json:"format,omitempty"` // int bitmask on text, string alignment on blocks

	// Headings
	Tag string `json:"tag,omitempty"`

	// Links
	URL string `json:"url,omitempty"`

	// Lists
	ListType string `json:"listType,omitempty"` // bullet, number, check
	Start    int    `json:"start,omitempty"`
	Checked  bool   `json:"checked,omitempty"`

	// Code blocks
	Language string `json:"language,omitempty"`
}

// Text format bitmask values, matching the editor's serialization.
const (
	FormatBold          = 1
	FormatItalic        = 2
	FormatStrikethrough = 4
	FormatCode          = 16
)
