package constant

// SystemPromptPrefix is the chat system prompt; retrieved document context
// is appended below it.
const SystemPromptPrefix = `You are a knowledgeable health assistant. Use the provided medical information to answer questions accurately. Always mention that you're not a doctor and users should consult healthcare professionals for medical advice.

Context from medical documents:
`

// FallbackMessage is returned when retrieval produces no documents above the
// similarity threshold.
const FallbackMessage = "I don't have specific information about that topic in my medical knowledge base. Please try rephrasing your question or ask about cardiovascular health, cholesterol, or other health topics I might be able to help with."

// NoProfileMessage is returned for personal questions when no user context
// accompanies the request.
const NoProfileMessage = "I don't have access to your personal health information. Please make sure you're logged in and have completed your profile to get personalized responses."

// NoBloodTypeMessage is returned when the profile carries no usable blood type.
const NoBloodTypeMessage = "I don't see your blood type information in your profile. You can add this information in your profile settings."

// LabUploadSource marks knowledge-base documents generated from ingested
// lab reports.
const LabUploadSource = "Lab Upload"

// PersonalQuestionPatterns route queries about the user's own data away
// from document retrieval.
var PersonalQuestionPatterns = []string{
	"my blood type", "what is my", "what is the user", "blood type",
	"how old am i", "my age", "what age am i", "how old is the user",
	"my sex", "my gender", "what sex am i", "what gender am i",
	"my medications", "what medications", "my meds", "what meds",
	"my family history", "family history", "my lifestyle", "my health history",
	"my lab values", "my lab results", "my recent labs", "my test results",
}
