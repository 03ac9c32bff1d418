// Package journal implements the reflection journal: create, list, stats and clear.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/easeaico/aura/internal/types"
)

// Repository persists journal entries.
type Repository interface {
	// Insert stores entry and sets its ID and CreatedAt.
	Insert(ctx context.Context, entry *types.JournalEntry) error
	// ListAll returns every entry, newest first.
	ListAll(ctx context.Context) ([]types.JournalEntry, error)
	// ListSince returns entries created at or after since, oldest first.
	ListSince(ctx context.Context, since time.Time) ([]types.JournalEntry, error)
	// DeleteAll removes every entry and returns the number removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// Analyzer produces the analysis for a validated submission.
type Analyzer interface {
	Run(ctx context.Context, sub types.JournalSubmission) types.AnalysisRecord
}

// EntryResponse is an entry with the transient crisis flags attached.
type EntryResponse struct {
	types.JournalEntry
	IsCritical        bool                     `json:"is_critical"`
	EmergencyContacts []types.EmergencyContact `json:"emergency_contacts"`
}

// Stats is the sentiment series for a time range.
type Stats struct {
	Labels       []string  `json:"labels"`
	Scores       []float64 `json:"scores"`
	CurrentRange string    `json:"current_range"`
}

// StatsLabelLayout formats stats labels.
const StatsLabelLayout = "2006-01-02 15:04"

var statsRanges = map[string]time.Duration{
	"day":   24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
}

// Service coordinates validation, analysis and persistence.
type Service struct {
	repo     Repository
	analyzer Analyzer
	stats    *cache.Cache
	now      func() time.Time
}

// NewService returns a Service. A zero statsTTL disables stats caching.
func NewService(repo Repository, analyzer Analyzer, statsTTL time.Duration) *Service {
	s := &Service{
		repo:     repo,
		analyzer: analyzer,
		now:      func() time.Time { return time.Now().UTC() },
	}
	if statsTTL > 0 {
		s.stats = cache.New(statsTTL, 2*statsTTL)
	}
	return s
}

// Create validates sub, analyses it and stores the result.
func (s *Service) Create(ctx context.Context, sub types.JournalSubmission) (EntryResponse, error) {
	sub, err := Normalize(sub)
	if err != nil {
		return EntryResponse{}, err
	}

	rec := s.analyzer.Run(ctx, sub)
	entry := types.NewJournalEntry(sub, rec)
	if err := s.repo.Insert(ctx, &entry); err != nil {
		slog.Error("failed to store journal entry", "error", err.Error())
		return EntryResponse{}, fmt.Errorf("failed to store journal entry: %w", err)
	}
	s.invalidateStats()

	contacts := rec.EmergencyContacts
	if contacts == nil {
		contacts = []types.EmergencyContact{}
	}
	slog.Info("journal entry created", "id", entry.ID, "mood", sub.MoodKey(), "critical", rec.IsCritical)
	return EntryResponse{
		JournalEntry:      entry,
		IsCritical:        rec.IsCritical,
		EmergencyContacts: contacts,
	}, nil
}

// List returns all entries newest first. Crisis flags are not persisted and are always unset.
func (s *Service) List(ctx context.Context) ([]EntryResponse, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryResponse{JournalEntry: e, EmergencyContacts: []types.EmergencyContact{}})
	}
	return out, nil
}

// Stats returns the sentiment series for rangeName. Unknown ranges use a week
// while CurrentRange still echoes the requested name.
// Cached series are keyed by the current minute, so an entry leaving the window
// may still be reported until the minute rolls over.
func (s *Service) Stats(ctx context.Context, rangeName string) (Stats, error) {
	if rangeName == "" {
		rangeName = "week"
	}
	now := s.now()
	key := rangeName + "@" + now.UTC().Truncate(time.Minute).Format(StatsLabelLayout)
	if s.stats != nil {
		if cached, ok := s.stats.Get(key); ok {
			return cached.(Stats), nil
		}
	}

	window, ok := statsRanges[rangeName]
	if !ok {
		window = statsRanges["week"]
	}
	entries, err := s.repo.ListSince(ctx, now.Add(-window))
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load mood stats: %w", err)
	}

	out := Stats{
		Labels:       make([]string, 0, len(entries)),
		Scores:       make([]float64, 0, len(entries)),
		CurrentRange: rangeName,
	}
	for _, e := range entries {
		out.Labels = append(out.Labels, e.CreatedAt.UTC().Format(StatsLabelLayout))
		out.Scores = append(out.Scores, e.SentimentScore)
	}
	if s.stats != nil {
		s.stats.SetDefault(key, out)
	}
	return out, nil
}

// Clear deletes every entry.
func (s *Service) Clear(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear journal entries: %w", err)
	}
	s.invalidateStats()
	slog.Info("journal cleared", "deleted", n)
	return n, nil
}

func (s *Service) invalidateStats() {
	if s.stats != nil {
		s.stats.Flush()
	}
}
