package client

import "strings"

// FilterNotes keeps notes whose title, content or category contains query,
// ignoring case. An empty or blank query keeps everything.
func FilterNotes(notes []Note, query string) []Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) ||
			strings.Contains(strings.ToLower(n.Category), q) {
			out = append(out, n)
		}
	}
	return out
}
