package models

// SectionBlueprint is one entry of a template: a title and a kind, no content.
type SectionBlueprint struct {
	Title string      `json:"title"`
	Kind  SectionKind `json:"kind"`
}

// ProjectTemplate is an immutable catalog entry used to seed a new project's
// section list. Instantiation deep-copies the blueprints; the template itself
// is never mutated at runtime.
type ProjectTemplate struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Blueprints  []SectionBlueprint `json:"blueprints"`
}
