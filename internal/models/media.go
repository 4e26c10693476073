package models

import (
	"time"
)

// Media is an owned audio asset an article may reference instead of a raw URL
type Media struct {
	ID        string    `json:"id" db:"id"`
	FolderID  *string   `json:"folder_id,omitempty" db:"folder_id"`
	Name      string    `json:"name" db:"name"`
	URL       string    `json:"url" db:"url"`
	MimeType  string    `json:"mime_type" db:"mime_type"`
	SizeBytes int64     `json:"size_bytes" db:"size_bytes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MediaFolder organizes media assets into a tree
type MediaFolder struct {
	ID        string    `json:"id" db:"id"`
	ParentID  *string   `json:"parent_id,omitempty" db:"parent_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MediaInput is the admin write payload for registering a media asset
type MediaInput struct {
	FolderID  *string `json:"folder_id"`
	Name      string  `json:"name" validate:"required"`
	URL       string  `json:"url" validate:"required,url"`
	MimeType  string  `json:"mime_type"`
	SizeBytes int64   `json:"size_bytes" validate:"gte=0"`
}

// MediaFolderInput is the admin write payload for creating a folder
type MediaFolderInput struct {
	ParentID *string `json:"parent_id"`
	Name     string  `json:"name" validate:"required"`
}
