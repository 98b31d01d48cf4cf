package site

// Block is a single event-shaped chunk found on a page, in whatever
// fidelity its discovery strategy could extract (spec.md §4.7 step 3-4).
// Empty fields are filled in, where possible, by heuristics in extract.go.
type Block struct {
	Title        string
	Description  string
	URL          string
	ImageURL     string
	DateRangeRaw string
	TimeRangeRaw string
	LocationRaw  string
	EventTypeRaw string
}

// discoverer finds candidate blocks on a parsed page using one strategy.
type discoverer func(doc pageDoc) []Block
