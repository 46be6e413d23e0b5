package prompt

// Fallbacks used when an optional field is left blank.
const (
	DefaultKeyDifferentiator = "built specifically for SaaS outbound"
	DefaultContextTrigger    = "hiring SDRs or pipeline growth focus"
	DefaultFreeValueOffer    = "free 3-email sequence teardown"
	DefaultSocialProofClient = "similar SaaS companies"
	DefaultSocialProofResult = "higher demo rates"
	DefaultCategory          = "SaaS outbound optimization"
	DefaultTargetDepartment  = "Sales/SDR"
	DefaultCurrentWorkflow   = "HubSpot + manual emails"
	DefaultAuthorityLine     = "B2B SaaS outbound expert"
)

// DefaultPainPoints is ordered; the first entry doubles as the primary pain
// when nothing more specific can be inferred.
var DefaultPainPoints = []string{
	"outbound volume but replies stuck under 5%",
	"leads slipping through pipeline",
}

const (
	// Tone is rendered into the master prompt.
	Tone = "Confident and professional"
	// RequestTone is sent alongside the draft request.
	RequestTone = "Confident but conversational"
)
