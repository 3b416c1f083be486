package prompt

import (
	"testing"

	"healthlync-be/internal/constant"
	"healthlync-be/internal/entity"
	"healthlync-be/internal/repository/contract"
	"healthlync-be/pkg/rag/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContext(t *testing.T) {
	docs := []*contract.ScoredMedicalDocument{
		{Document: &entity.MedicalDocument{Title: "Doc A", Content: "Content A"}},
		{Document: &entity.MedicalDocument{Title: "Doc B", Content: "Content B"}},
	}

	got := BuildContext(docs)

	assert.Equal(t, "Source: Doc A\nContent A\n\nSource: Doc B\nContent B", got)
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil))
}

func TestEnrichQuery(t *testing.T) {
	tests := []struct {
		name        string
		userContext *profile.UserContext
		want        string
	}{
		{
			name:        "nil context returns raw query",
			userContext: nil,
			want:        "Is my cholesterol ok?",
		},
		{
			name:        "nil profile returns raw query",
			userContext: &profile.UserContext{},
			want:        "Is my cholesterol ok?",
		},
		{
			name: "empty profile returns raw query",
			userContext: &profile.UserContext{
				Profile: &profile.Profile{},
			},
			want: "Is my cholesterol ok?",
		},
		{
			name: "age and sex",
			userContext: &profile.UserContext{
				Profile: &profile.Profile{Age: 45, Sex: "Female"},
			},
			want: "Patient is a 45 year old female. \n\nQuestion: Is my cholesterol ok?",
		},
		{
			name: "family history appended",
			userContext: &profile.UserContext{
				Profile: &profile.Profile{
					Age: 45,
					Sex: "Female",
					FamilyHistoryDetails: []profile.FamilyCondition{
						{Condition: "heart disease"},
						{Condition: "diabetes"},
					},
				},
			},
			want: "Patient is a 45 year old female. Family history includes: heart disease, diabetes. \n\nQuestion: Is my cholesterol ok?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnrichQuery("Is my cholesterol ok?", tt.userContext)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnrichQueryIncludesLabValues(t *testing.T) {
	userContext := &profile.UserContext{
		Profile: &profile.Profile{Age: 60, Sex: "Male"},
		RecentLabValues: map[string]profile.LabValueSummary{
			"HbA1c": {Value: 5.4, Unit: "%"},
		},
	}

	got := EnrichQuery("Am I prediabetic?", userContext)

	assert.Contains(t, got, "Patient is a 60 year old male")
	assert.Contains(t, got, "Recent lab values: HbA1c: 5.4 %")
	assert.Contains(t, got, "\n\nQuestion: Am I prediabetic?")
}

func TestBuildMessages(t *testing.T) {
	messages := BuildMessages("What is ApoB?", "Source: Doc\nText")

	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, constant.SystemPromptPrefix+"Source: Doc\nText", messages[0].Content)
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "What is ApoB?", messages[1].Content)
}

func TestBuildPersonalMessages(t *testing.T) {
	userContext := &profile.UserContext{
		Profile: &profile.Profile{Age: 30, Sex: "Female"},
	}

	messages := BuildPersonalMessages("how old am i", userContext)

	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "user's own health data")
	assert.Contains(t, messages[1].Content, "Patient is a 30 year old female")
}
