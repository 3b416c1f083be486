// Package prompt assembles the context string and chat messages for the
// medical Q&A pipeline.
package prompt

import (
	"fmt"
	"strings"

	"healthlync-be/internal/constant"
	"healthlync-be/internal/repository/contract"
	"healthlync-be/pkg/llm"
	"healthlync-be/pkg/rag/profile"
)

// BuildContext renders retrieved documents into the context block fed to
// the model: "Source: {title}\n{content}" per document, blank-line joined.
func BuildContext(docs []*contract.ScoredMedicalDocument) string {
	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = fmt.Sprintf("Source: %s\n%s", doc.Document.Title, doc.Document.Content)
	}
	return strings.Join(parts, "\n\n")
}

// EnrichQuery prepends patient context to the user message. Retrieval always
// runs on the raw query; only the generation prompt sees this enrichment.
func EnrichQuery(query string, userContext *profile.UserContext) string {
	if userContext == nil || userContext.Profile == nil {
		return query
	}

	p := userContext.Profile
	var contextParts []string

	if p.Age > 0 && p.Sex != "" {
		contextParts = append(contextParts, fmt.Sprintf("Patient is a %d year old %s", p.Age, strings.ToLower(p.Sex)))
	}

	if len(p.FamilyHistoryDetails) > 0 {
		conditions := make([]string, len(p.FamilyHistoryDetails))
		for i, fh := range p.FamilyHistoryDetails {
			conditions[i] = fh.Condition
		}
		contextParts = append(contextParts, "Family history includes: "+strings.Join(conditions, ", "))
	}

	if len(userContext.RecentLabValues) > 0 {
		labParts := make([]string, 0, len(userContext.RecentLabValues))
		for test, v := range userContext.RecentLabValues {
			labParts = append(labParts, fmt.Sprintf("%s: %g %s", test, v.Value, v.Unit))
		}
		contextParts = append(contextParts, "Recent lab values: "+strings.Join(labParts, ", "))
	}

	if len(contextParts) == 0 {
		return query
	}

	return strings.Join(contextParts, ". ") + ". \n\nQuestion: " + query
}

// BuildMessages produces the chat history for a context-grounded answer.
func BuildMessages(query, context string) []llm.Message {
	return []llm.Message{
		{
			Role:    "system",
			Content: constant.SystemPromptPrefix + context,
		},
		{
			Role:    "user",
			Content: query,
		},
	}
}

// BuildPersonalMessages produces the chat history for a personal question
// answered from the user's own context, with no retrieved documents.
func BuildPersonalMessages(query string, userContext *profile.UserContext) []llm.Message {
	return []llm.Message{
		{
			Role:    "system",
			Content: "You are a knowledgeable health assistant answering a question about the user's own health data. Use only the patient context provided in the question. Always mention that you're not a doctor and users should consult healthcare professionals for medical advice.",
		},
		{
			Role:    "user",
			Content: EnrichQuery(query, userContext),
		},
	}
}
