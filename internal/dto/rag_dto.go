package dto

import (
	"time"

	"healthlync-be/pkg/rag/profile"
)

// AskRequest is the public Q&A request. UserContext is optional and supplied
// by authenticated clients for personalized answers.
type AskRequest struct {
	Query       string               `json:"query" validate:"required,min=1"`
	UserContext *profile.UserContext `json:"userContext,omitempty"`
	Categories  []string             `json:"categories,omitempty"`
	Limit       int                  `json:"limit,omitempty" validate:"omitempty,min=1,max=20"`
	Threshold   float64              `json:"threshold,omitempty" validate:"omitempty,min=0,max=1"`
}

type SourceDTO struct {
	Title      string  `json:"title"`
	Source     string  `json:"source"`
	Similarity float64 `json:"similarity"`
}

// AskResponse mirrors the wire format clients already depend on, including
// the camelCase keys.
type AskResponse struct {
	Success     bool        `json:"success"`
	Response    string      `json:"response"`
	Sources     []SourceDTO `json:"sources"`
	Timestamp   time.Time   `json:"timestamp"`
	ContextUsed bool        `json:"contextUsed"`
}

type SearchRequest struct {
	Query      string   `json:"query" validate:"required,min=1"`
	Categories []string `json:"categories,omitempty"`
	Limit      int      `json:"limit,omitempty" validate:"omitempty,min=1,max=20"`
	Threshold  float64  `json:"threshold,omitempty" validate:"omitempty,min=0,max=1"`
}

type SearchResultDTO struct {
	Id         string   `json:"id"`
	Title      string   `json:"title"`
	Source     string   `json:"source"`
	Categories []string `json:"categories,omitempty"`
	Snippet    string   `json:"snippet"`
	Similarity float64  `json:"similarity"`
}

type SearchResponse struct {
	Results []SearchResultDTO `json:"results"`
	Count   int               `json:"count"`
}
