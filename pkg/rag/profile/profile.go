// Package profile carries the caller-supplied user context for Q&A and the
// personal-question detection that bypasses document retrieval.
package profile

import "strings"

type FamilyCondition struct {
	Condition string `json:"condition"`
}

type Profile struct {
	Age                  int               `json:"age,omitempty"`
	Sex                  string            `json:"sex,omitempty"`
	BloodType            string            `json:"bloodType,omitempty"`
	FamilyHistoryDetails []FamilyCondition `json:"familyHistoryDetails,omitempty"`
}

type LabValueSummary struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

type UserContext struct {
	Profile         *Profile                   `json:"profile,omitempty"`
	RecentLabValues map[string]LabValueSummary `json:"recentLabValues,omitempty"`
}

// IsPersonalQuestion reports whether the query asks about the user's own
// data rather than general medical knowledge.
func IsPersonalQuestion(query string, patterns []string) bool {
	queryLower := strings.ToLower(query)
	for _, pattern := range patterns {
		if strings.Contains(queryLower, pattern) {
			return true
		}
	}
	return false
}

// AsksBloodType reports whether the query asks for the user's blood type.
func AsksBloodType(query string) bool {
	return strings.Contains(strings.ToLower(query), "blood type")
}
