package sanitize

// Kind selects the character policy applied to a field.
type Kind int

const (
	// KindText keeps printable text but drops markup and template braces.
	KindText Kind = iota
	// KindCompany keeps printable text but drops markup.
	KindCompany
	// KindName keeps letters, whitespace, apostrophes and hyphens only.
	KindName
)

// Rule describes how one field is cleaned and what shape the clean value must have.
type Rule struct {
	Field          string
	Label          string
	Kind           Kind
	Required       bool
	MaxChars       int
	MaxWords       int
	SingleSentence bool
}

var (
	CompanyName       = Rule{Field: "companyName", Label: "Your Company Name", Kind: KindCompany, Required: true, MaxChars: 50}
	SenderNameTitle   = Rule{Field: "senderNameTitle", Label: "Your Name & Title", Kind: KindText, Required: true, MaxChars: 50}
	ProductService    = Rule{Field: "productService", Label: "Product/Service", Kind: KindText, Required: true, MaxChars: 200, SingleSentence: true}
	ProspectFirstName = Rule{Field: "prospectFirstName", Label: "Prospect First Name", Kind: KindName, Required: true, MaxChars: 30}
	ProspectCompany   = Rule{Field: "prospectCompany", Label: "Prospect Company", Kind: KindCompany, Required: true, MaxChars: 50}
	ProspectTitle     = Rule{Field: "prospectTitle", Label: "Prospect Title", Kind: KindText, Required: true, MaxChars: 70}

	KeyDifferentiator = Rule{Field: "keyDifferentiator", Label: "Key Differentiator", Kind: KindText, MaxChars: 150, MaxWords: 25}
	PrimaryPain       = Rule{Field: "primaryPain", Label: "Primary Pain", Kind: KindText, MaxChars: 120, MaxWords: 20}
	SocialProofClient = Rule{Field: "socialProofClient", Label: "Social Proof Client", Kind: KindText, MaxChars: 60, MaxWords: 10}
	SocialProofResult = Rule{Field: "socialProofResult", Label: "Social Proof Result", Kind: KindText, MaxChars: 90, MaxWords: 15}
	SignatureLine     = Rule{Field: "signatureLine", Label: "Signature Line", Kind: KindText, MaxChars: 60, MaxWords: 10}
)

// CTAField is the field name reported when the call-to-action type is unknown.
const CTAField = "ctaType"
