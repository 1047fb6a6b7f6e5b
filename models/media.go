package models

// MediaUsageEntry is one back-reference from a media asset to a project that
// uses it. SectionID and SectionTitle are empty when the reference comes from
// the project's flat image list rather than an embedded section media list.
// Entries are derived from the canonical collection and rebuilt wholesale by
// the store after every successful write; they are never hand-edited.
type MediaUsageEntry struct {
	MediaID      string `json:"media_id"`
	ProjectID    string `json:"project_id"`
	ProjectTitle string `json:"project_title"`
	SectionID    string `json:"section_id,omitempty"`
	SectionTitle string `json:"section_title,omitempty"`
}

// MediaAsset is what the media service resolves for a referenced asset id.
// The backend never fetches or processes the binary itself.
type MediaAsset struct {
	ID   string    `json:"id"`
	URL  string    `json:"url"`
	Type MediaType `json:"type"`
}
