package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testPatterns = []string{
	"my blood type", "what is my", "blood type",
	"how old am i", "my age",
	"my lab values", "my lab results", "family history",
}

func TestIsPersonalQuestion(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"What is my blood type?", true},
		{"MY LAB RESULTS please", true},
		{"how old am I", true},
		{"Does family history matter for heart disease?", true},
		{"What causes high cholesterol?", false},
		{"Explain ApoB", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPersonalQuestion(tt.query, testPatterns))
		})
	}
}

func TestAsksBloodType(t *testing.T) {
	assert.True(t, AsksBloodType("what is my Blood Type"))
	assert.True(t, AsksBloodType("BLOOD TYPE?"))
	assert.False(t, AsksBloodType("what type of blood test do I need"))
	assert.False(t, AsksBloodType("how old am i"))
}
