package toml

import "fmt"

const currentSchemaVersion = 1

type ledgerFileSchema struct {
	Version   int             `toml:"version"`
	UserID    string          `toml:"user_id"`
	Credits   int64           `toml:"credits"`
	UpdatedAt string          `toml:"updated_at,omitempty"`
	History   []historySchema `toml:"history,omitempty"`
}

type historySchema struct {
	ID           string `toml:"id"`
	Type         string `toml:"type"`
	Change       int64  `toml:"change"`
	BalanceAfter int64  `toml:"balance_after"`
	Timestamp    string `toml:"timestamp"`
}

type draftsFileSchema struct {
	Version int           `toml:"version"`
	UserID  string        `toml:"user_id"`
	Drafts  []draftSchema `toml:"drafts,omitempty"`
}

type draftSchema struct {
	ID            string       `toml:"id"`
	Tone          string       `toml:"tone"`
	GeneratedText string       `toml:"generated_text"`
	Timestamp     string       `toml:"timestamp"`
	Fields        fieldsSchema `toml:"fields"`
}

type fieldsSchema struct {
	CompanyName       string `toml:"company_name"`
	SenderNameTitle   string `toml:"sender_name_title"`
	ProductService    string `toml:"product_service"`
	ProspectFirstName string `toml:"prospect_first_name"`
	ProspectCompany   string `toml:"prospect_company"`
	ProspectTitle     string `toml:"prospect_title"`
	CTAType           string `toml:"cta_type"`
	KeyDifferentiator string `toml:"key_differentiator,omitempty"`
	PrimaryPain       string `toml:"primary_pain,omitempty"`
	SocialProofClient string `toml:"social_proof_client,omitempty"`
	SocialProofResult string `toml:"social_proof_result,omitempty"`
	SignatureLine     string `toml:"signature_line,omitempty"`
}

func validateVersion(kind string, version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported %s schema version %d (current %d)", kind, version, currentSchemaVersion)
	}
	return nil
}

func versionOrCurrent(version int) int {
	if version == 0 {
		return currentSchemaVersion
	}
	return version
}
