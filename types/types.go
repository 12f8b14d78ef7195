// Package types defines the data structures used in the link shortener service.
package types

import "time"

// Link is the persisted record associating a slug with its target URL.
type Link struct {
	Slug       string    `json:"slug" bson:"slug" db:"slug"`
	URL        string    `json:"url" bson:"url" db:"url"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	VisitCount int64     `json:"visitCount" bson:"visitCount" db:"visit_count"`
}

// ShortenRequest represents the request body of the create operation.
type ShortenRequest struct {
	URL string `json:"url" validate:"required,startswith=http"`
}

// ShortenResponse represents the response body of a successful create operation.
type ShortenResponse struct {
	Slug string `json:"slug"`
}

// ErrorResponse is the JSON error body used by the API routes.
type ErrorResponse struct {
	Error string `json:"error"`
}
