package model

// ListedItem is one element of a flat playlist listing.
type ListedItem struct {
	// ID is the unique media identifier (the YouTube video id).
	ID string

	// Name is the free-text display name, usually "<artist> - <title>".
	Name string
}

// Result is the outcome of processing one Entry.
type Result struct {
	Entry Entry

	// Path is the final location of the placed artifact. Empty when the
	// item failed or was skipped.
	Path string

	// Skipped is set when the destination already existed and the
	// overwrite policy said to leave it alone.
	Skipped bool

	Err error
}

// OK reports whether the entry was placed (or intentionally skipped).
func (r Result) OK() bool {
	return r.Err == nil
}
