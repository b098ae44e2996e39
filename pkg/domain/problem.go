package domain

// Problem is a single student submission handed to a solver. At least one of
// Text or ImageData is expected to be set; the solver treats both as optional.
type Problem struct {
	Text      string
	ImageData string // base64, no data URL prefix
	MimeType  string // e.g. "image/png", set when ImageData is present
}

func (p Problem) Empty() bool {
	return p.Text == "" && p.ImageData == ""
}
