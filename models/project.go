package models

import "time"

// ProjectType classifies what kind of portfolio entry a project is
type ProjectType string

const (
	TypeCaseStudy ProjectType = "case-study"
	TypeProject   ProjectType = "project"
	TypeImage     ProjectType = "image"
	TypeVideo     ProjectType = "video"
	TypeDocument  ProjectType = "document"
)

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	StatusDraft     ProjectStatus = "draft"
	StatusPublished ProjectStatus = "published"
	StatusArchived  ProjectStatus = "archived"
)

// MediaType distinguishes still images from video embeds
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// UnifiedProject is the canonical project record. It carries both content
// representations: the flat "simple" fields (Content + Images) and the
// ordered "advanced" section list. The two are kept consistent by the
// content synchronizer in the services package.
type UnifiedProject struct {
	ID         string      `json:"id"`
	Slug       string      `json:"slug"`
	Title      string      `json:"title"`
	Role       string      `json:"role"`
	Summary    string      `json:"summary"`
	Tags       []string    `json:"tags,omitempty"`
	Type       ProjectType `json:"type"`
	Featured   bool        `json:"featured"`
	TemplateID *string     `json:"template_id,omitempty"`

	Content  ProjectContent   `json:"content"`
	Images   []ProjectImage   `json:"images,omitempty"`
	Sections []ProjectSection `json:"sections,omitempty"`

	Status      ProjectStatus `json:"status"`
	OrderIndex  *int          `json:"order_index,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
}

// ProjectContent is the flat "simple" content representation
type ProjectContent struct {
	Challenge    string   `json:"challenge,omitempty"`
	Solution     string   `json:"solution,omitempty"`
	Results      string   `json:"results,omitempty"`
	Process      []string `json:"process,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

// IsEmpty reports whether no flat content field carries a value
func (c ProjectContent) IsEmpty() bool {
	return c.Challenge == "" && c.Solution == "" && c.Results == "" &&
		len(c.Process) == 0 && len(c.Technologies) == 0 && len(c.Skills) == 0
}

// ProjectImage is a media reference attached to a project or embedded in a section
type ProjectImage struct {
	ID      string    `json:"id"`
	URL     string    `json:"url"`
	Alt     string    `json:"alt,omitempty"`
	Caption string    `json:"caption,omitempty"`
	Type    MediaType `json:"type"`
	Order   int       `json:"order"`
}

// SectionKind identifies what a section holds and, for the kinds that mirror
// a flat content field, which field it synchronizes with
type SectionKind string

const (
	KindChallenge    SectionKind = "challenge"
	KindSolution     SectionKind = "solution"
	KindResults      SectionKind = "results"
	KindProcess      SectionKind = "process"
	KindTechnologies SectionKind = "technologies"
	KindSkills       SectionKind = "skills"
	KindMedia        SectionKind = "media"
	KindText         SectionKind = "text"
	KindGallery      SectionKind = "gallery"
	KindCustom       SectionKind = "custom"
)

// ProjectSection is one titled content block of the advanced representation.
// Body carries free text for text-like kinds, Items carries the entries of
// list-like kinds (process, technologies, skills), and Media carries embedded
// assets. Generated marks sections produced by the content synchronizer;
// only those may be replaced or dropped when the flat fields change.
type ProjectSection struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Kind      SectionKind    `json:"kind"`
	Body      string         `json:"body,omitempty"`
	Items     []string       `json:"items,omitempty"`
	Media     []ProjectImage `json:"media,omitempty"`
	Generated bool           `json:"generated,omitempty"`
}

// CreateProjectData is the input for creating a new project
type CreateProjectData struct {
	Title      string      `json:"title"`
	Role       string      `json:"role"`
	Summary    string      `json:"summary"`
	Slug       string      `json:"slug,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	Type       ProjectType `json:"type,omitempty"`
	Featured   bool        `json:"featured,omitempty"`
	TemplateID *string     `json:"template_id,omitempty"`
}

// UpdateProjectData is a partial update. Only non-nil fields are applied;
// slices replace the stored value wholesale rather than merging element-wise.
type UpdateProjectData struct {
	Title      *string           `json:"title,omitempty"`
	Role       *string           `json:"role,omitempty"`
	Summary    *string           `json:"summary,omitempty"`
	Slug       *string           `json:"slug,omitempty"`
	Tags       *[]string         `json:"tags,omitempty"`
	Type       *ProjectType      `json:"type,omitempty"`
	Featured   *bool             `json:"featured,omitempty"`
	TemplateID *string           `json:"template_id,omitempty"`
	Content    *ProjectContent   `json:"content,omitempty"`
	Images     *[]ProjectImage   `json:"images,omitempty"`
	Sections   *[]ProjectSection `json:"sections,omitempty"`
	Status     *ProjectStatus    `json:"status,omitempty"`
	OrderIndex *int              `json:"order_index,omitempty"`
}

// Clone returns a deep copy of the project. Every slice and nested slice is
// copied so the result is independently mutable from the receiver.
func (p UnifiedProject) Clone() UnifiedProject {
	out := p
	out.Tags = cloneStrings(p.Tags)
	out.Content = p.Content.Clone()
	out.Images = CloneImages(p.Images)
	out.Sections = CloneSections(p.Sections)
	if p.TemplateID != nil {
		v := *p.TemplateID
		out.TemplateID = &v
	}
	if p.OrderIndex != nil {
		v := *p.OrderIndex
		out.OrderIndex = &v
	}
	if p.PublishedAt != nil {
		v := *p.PublishedAt
		out.PublishedAt = &v
	}
	return out
}

// Clone returns a deep copy of the flat content
func (c ProjectContent) Clone() ProjectContent {
	out := c
	out.Process = cloneStrings(c.Process)
	out.Technologies = cloneStrings(c.Technologies)
	out.Skills = cloneStrings(c.Skills)
	return out
}

// Clone returns a deep copy of the section
func (s ProjectSection) Clone() ProjectSection {
	out := s
	out.Items = cloneStrings(s.Items)
	out.Media = CloneImages(s.Media)
	return out
}

// CloneImages deep-copies an image list
func CloneImages(in []ProjectImage) []ProjectImage {
	if in == nil {
		return nil
	}
	out := make([]ProjectImage, len(in))
	copy(out, in)
	return out
}

// CloneSections deep-copies a section list
func CloneSections(in []ProjectSection) []ProjectSection {
	if in == nil {
		return nil
	}
	out := make([]ProjectSection, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
