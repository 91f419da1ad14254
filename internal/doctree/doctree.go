package doctree

// DocTree is the outline of an imported source document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Text content of this node (may be empty for container nodes)
	Page     int        // Source page/line (0 if N/A)
	Children []*DocNode // Subsections
}
