// Package postgres keeps credit ledgers and saved drafts in PostgreSQL through
// GORM. Balance updates lock the user's row with SELECT ... FOR UPDATE.
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bnema/fanthom/internal/domain"
)

type creditBalance struct {
	UserID    string `gorm:"primaryKey;size:128"`
	Credits   int64  `gorm:"not null;check:credits >= 0"`
	UpdatedAt time.Time
}

func (creditBalance) TableName() string { return "credit_balances" }

type creditHistory struct {
	ID           string    `gorm:"primaryKey;size:36"`
	UserID       string    `gorm:"size:128;not null;index:idx_credit_history_user_time,priority:1"`
	Type         string    `gorm:"size:32;not null"`
	Change       int64     `gorm:"not null"`
	BalanceAfter int64     `gorm:"not null"`
	Timestamp    time.Time `gorm:"not null;index:idx_credit_history_user_time,priority:2,sort:desc"`
}

func (creditHistory) TableName() string { return "credit_history" }

type savedDraft struct {
	ID                string `gorm:"primaryKey;size:36"`
	UserID            string `gorm:"size:128;not null;index"`
	CompanyName       string
	SenderNameTitle   string
	ProductService    string
	ProspectFirstName string
	ProspectCompany   string
	ProspectTitle     string
	CTAType           string
	KeyDifferentiator string
	PrimaryPain       string
	SocialProofClient string
	SocialProofResult string
	SignatureLine     string
	Tone              string
	GeneratedText     string `gorm:"type:text"`
	CreatedAt         time.Time
}

func (savedDraft) TableName() string { return "saved_drafts" }

// Open connects to dsn and migrates the ledger and draft tables.
func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("open postgres: empty dsn")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&creditBalance{}, &creditHistory{}, &savedDraft{}); err != nil {
		return nil, fmt.Errorf("migrate ledger tables: %w", err)
	}

	return db, nil
}

func checkUserID(userID domain.UserID) error {
	if userID == "" {
		return fmt.Errorf("empty user id: %w", domain.ErrInvalidUserID)
	}
	return nil
}

func toHistoryRow(entry domain.HistoryEntry) creditHistory {
	return creditHistory{
		ID:           entry.ID,
		UserID:       string(entry.UserID),
		Type:         string(entry.Type),
		Change:       entry.Change,
		BalanceAfter: entry.BalanceAfter,
		Timestamp:    entry.Timestamp.UTC(),
	}
}

func fromHistoryRow(row creditHistory) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:           row.ID,
		UserID:       domain.UserID(row.UserID),
		Type:         domain.EntryType(row.Type),
		Change:       row.Change,
		BalanceAfter: row.BalanceAfter,
		Timestamp:    row.Timestamp.UTC(),
	}
}

func toDraftRow(d domain.SavedDraft) savedDraft {
	f := d.Fields
	return savedDraft{
		ID:                d.ID,
		UserID:            string(d.UserID),
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
		Tone:              d.Tone,
		GeneratedText:     d.GeneratedText,
		CreatedAt:         d.Timestamp.UTC(),
	}
}
