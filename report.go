package svgkit

// NodeDescriptor describes one measured node of the document.
type NodeDescriptor struct {
	// Index is the node's ordinal in the document-order traversal.
	// Nodes without geometry keep their ordinal, so indices may have
	// gaps.
	Index int `json:"index"`
	// ID is the source id attribute, absent when the element has none.
	ID string `json:"id,omitempty"`
	// Kind is one of path, image or text.
	Kind string `json:"kind"`
	// BBox is the node extent after text layout, in document units.
	BBox Bounds `json:"bbox"`
}

// MeasurementReport is the result of measuring one document.
// Overall is nil exactly when Nodes is empty.
type MeasurementReport struct {
	Overall *Bounds          `json:"overall"`
	Nodes   []NodeDescriptor `json:"nodes"`
}
