package libdiff

// Annotations marking the nodes of a diff document.
const (
	DeleteAnnotation     = "delete"
	InsertAnnotation     = "insert"
	ReplaceAnnotation    = "replace"
	StringDiffAnnotation = "strdiff"
	ArrayDiffAnnotation  = "arraydiff"
	StructDiffAnnotation = "structdiff"
)
