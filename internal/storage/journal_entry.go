package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/easeaico/aura/internal/types"
)

// journalEntryModel maps to the journal_entries table.
type journalEntryModel struct {
	ID                int    `gorm:"primaryKey"`
	Content           string `gorm:"type:text"`
	ReflectionDate    string
	OverallMood       string
	SpecificEmotions  string
	Strategies        string `gorm:"type:text"`
	Intensity         int
	LessonsLearned    string `gorm:"type:text"`
	TemplateName      string
	UserAge           int
	UserGender        string
	UserPhone         string
	CreatedAt         time.Time `gorm:"index"`
	SentimentScore    float64
	Emotion           string
	Suggestion        string   `gorm:"type:text"`
	BreathingExercise string   `gorm:"type:text"`
	FocusMusic        string   `gorm:"type:text"`
	CounselorInfo     string   `gorm:"type:text"`
	Quote             string   `gorm:"type:text"`
	CounselorTips     []string `gorm:"type:text;serializer:json"`
}

func (journalEntryModel) TableName() string {
	return "journal_entries"
}

// JournalRepo accesses journal entries.
type JournalRepo struct {
	db  *gorm.DB
	now func() time.Time
}

// NewJournalRepo returns a JournalRepo.
func NewJournalRepo(db *gorm.DB) *JournalRepo {
	return &JournalRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Insert stores entry and fills in its ID and CreatedAt.
func (r *JournalRepo) Insert(ctx context.Context, entry *types.JournalEntry) error {
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}
	record := journalEntryFromDomain(*entry)
	record.ID = 0
	record.CreatedAt = r.now()
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	entry.ID = record.ID
	entry.CreatedAt = record.CreatedAt
	return nil
}

// ListAll returns every entry, newest first.
func (r *JournalRepo) ListAll(ctx context.Context) ([]types.JournalEntry, error) {
	var records []journalEntryModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	return journalEntriesToDomain(records), nil
}

// ListSince returns entries created at or after since, oldest first.
func (r *JournalRepo) ListSince(ctx context.Context, since time.Time) ([]types.JournalEntry, error) {
	var records []journalEntryModel
	if err := r.db.WithContext(ctx).
		Where("created_at >= ?", since.UTC()).
		Order("created_at ASC").
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	return journalEntriesToDomain(records), nil
}

// DeleteAll removes every entry in one transaction.
func (r *JournalRepo) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&journalEntryModel{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete journal entries: %w", err)
	}
	return deleted, nil
}

func journalEntryFromDomain(e types.JournalEntry) journalEntryModel {
	return journalEntryModel{
		ID:                e.ID,
		Content:           e.Content,
		ReflectionDate:    e.ReflectionDate,
		OverallMood:       e.OverallMood,
		SpecificEmotions:  e.SpecificEmotions,
		Strategies:        e.Strategies,
		Intensity:         e.Intensity,
		LessonsLearned:    e.LessonsLearned,
		TemplateName:      e.TemplateName,
		UserAge:           e.UserAge,
		UserGender:        e.UserGender,
		UserPhone:         e.UserPhone,
		CreatedAt:         e.CreatedAt,
		SentimentScore:    e.SentimentScore,
		Emotion:           e.Emotion,
		Suggestion:        e.Suggestion,
		BreathingExercise: e.BreathingExercise,
		FocusMusic:        e.FocusMusic,
		CounselorInfo:     e.CounselorInfo,
		Quote:             e.Quote,
		CounselorTips:     e.CounselorTips,
	}
}

func journalEntryToDomain(m journalEntryModel) types.JournalEntry {
	tips := m.CounselorTips
	if tips == nil {
		tips = []string{}
	}
	return types.JournalEntry{
		ID:                m.ID,
		Content:           m.Content,
		ReflectionDate:    m.ReflectionDate,
		OverallMood:       m.OverallMood,
		SpecificEmotions:  m.SpecificEmotions,
		Strategies:        m.Strategies,
		Intensity:         m.Intensity,
		LessonsLearned:    m.LessonsLearned,
		TemplateName:      m.TemplateName,
		UserAge:           m.UserAge,
		UserGender:        m.UserGender,
		UserPhone:         m.UserPhone,
		CreatedAt:         m.CreatedAt.UTC(),
		SentimentScore:    m.SentimentScore,
		Emotion:           m.Emotion,
		Suggestion:        m.Suggestion,
		BreathingExercise: m.BreathingExercise,
		FocusMusic:        m.FocusMusic,
		CounselorInfo:     m.CounselorInfo,
		Quote:             m.Quote,
		CounselorTips:     tips,
	}
}

func journalEntriesToDomain(records []journalEntryModel) []types.JournalEntry {
	out := make([]types.JournalEntry, 0, len(records))
	for _, rec := range records {
		out = append(out, journalEntryToDomain(rec))
	}
	return out
}
