package toml

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
	"github.com/spf13/viper"
)

const draftsCollection = "drafts"

type DraftStore struct {
	root string
}

var _ ports.DraftStore = (*DraftStore)(nil)

func NewDraftStore(cfg *viper.Viper) (*DraftStore, error) {
	root, err := ResolveRoot(cfg)
	if err != nil {
		return nil, err
	}

	return &DraftStore{root: root}, nil
}

func (s *DraftStore) Append(ctx context.Context, draft domain.SavedDraft) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := userFilePath(s.root, draftsCollection, draft.UserID)
	if err != nil {
		return err
	}

	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	var file draftsFileSchema
	if _, err := readTOML(path, &file); err != nil {
		return err
	}
	if err := validateVersion("drafts", file.Version); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	file.Version = versionOrCurrent(file.Version)
	file.UserID = string(draft.UserID)
	file.Drafts = append(file.Drafts, toDraftSchema(draft))

	return writeTOML(path, file)
}

func toDraftSchema(d domain.SavedDraft) draftSchema {
	f := d.Fields
	return draftSchema{
		ID:            d.ID,
		Tone:          d.Tone,
		GeneratedText: d.GeneratedText,
		Timestamp:     formatTime(d.Timestamp),
		Fields: fieldsSchema{
			CompanyName:       f.CompanyName,
			SenderNameTitle:   f.SenderNameTitle,
			ProductService:    f.ProductService,
			ProspectFirstName: f.ProspectFirstName,
			ProspectCompany:   f.ProspectCompany,
			ProspectTitle:     f.ProspectTitle,
			CTAType:           string(f.CTAType),
			KeyDifferentiator: f.KeyDifferentiator,
			PrimaryPain:       f.PrimaryPain,
			SocialProofClient: f.SocialProofClient,
			SocialProofResult: f.SocialProofResult,
			SignatureLine:     f.SignatureLine,
		},
	}
}
