package domain

import "time"

// CategoryRef is the resolved {id, name} view of a parent category.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category is a node in the catalog tree. ParentID is a weak reference:
// deleting the parent leaves it dangling.
type Category struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	ParentID  string       `json:"parentId,omitempty"`
	Parent    *CategoryRef `json:"parent,omitempty"`
	Image     string       `json:"image,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
