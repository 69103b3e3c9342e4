package catalog

// ImageRecord is one image to place on the sheet. Width and Height are the
// natural pixel dimensions; an empty Label or Note means none.
type ImageRecord struct {
	Ref    string `json:"ref"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label,omitempty"`
	Note   string `json:"note,omitempty"`
}

// hasText reports whether any record carries a label and whether any carries a note.
func hasText(records []ImageRecord) (labels, notes bool) {
	for _, r := range records {
		if r.Label != "" {
			labels = true
		}
		if r.Note != "" {
			notes = true
		}
		if labels && notes {
			break
		}
	}
	return labels, notes
}
