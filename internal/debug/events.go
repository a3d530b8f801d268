package debug

// ExportStartData describes the display arrangement at the start of an
// export operation.
type ExportStartData struct {
	Rows       int  `json:"rows"`
	Cols       int  `json:"cols"`
	CellSize   int  `json:"cell_size"`
	Transposed bool `json:"transposed"`
}

// CellData records one display-to-logical index resolution during export.
type CellData struct {
	DisplayIndex int    `json:"display_index"`
	LogicalIndex int    `json:"logical_index"`
	Row          int    `json:"row"`
	Col          int    `json:"col"`
	Kind         string `json:"kind"`
	Rotation     int    `json:"rotation"`
}

// ExportEndData summarises a completed export.
type ExportEndData struct {
	Cells     int   `json:"cells"`
	Width     int   `json:"width"`
	Height    int   `json:"height"`
	ElapsedMs int64 `json:"elapsed_ms"`
}

// SnapshotData records the outcome of a snapshot load or save.
type SnapshotData struct {
	Patterns int    `json:"patterns"`
	Library  int    `json:"library"`
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	Action   string `json:"action"` // "load" or "save"
}
