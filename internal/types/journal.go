package types

import (
	"strings"
	"time"
)

// JournalSubmission is one reflection as sent by the client.
type JournalSubmission struct {
	ReflectionDate   string   `json:"reflection_date"`
	OverallMood      string   `json:"overall_mood"`
	SpecificEmotions []string `json:"specific_emotions"`
	Triggers         string   `json:"triggers"`
	Strategies       string   `json:"strategies"`
	Intensity        int      `json:"intensity"`
	Lessons          string   `json:"lessons"`
	TemplateName     string   `json:"template_name"`
	UserAge          int      `json:"user_age"`
	UserGender       string   `json:"user_gender"`
	UserPhone        string   `json:"user_phone,omitempty"`
}

// MoodKey returns the lower-cased mood used for table lookups.
func (s JournalSubmission) MoodKey() string {
	return strings.ToLower(strings.TrimSpace(s.OverallMood))
}

// CombinedText joins the free-text blocks and lower-cases them for keyword scans.
func (s JournalSubmission) CombinedText() string {
	return strings.ToLower(s.Triggers + " " + s.Strategies + " " + s.Lessons)
}

// EmergencyContact is a crisis line shown to the user.
type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Desc  string `json:"desc"`
}

// AnalysisRecord is the working result threaded through the analysis stages.
type AnalysisRecord struct {
	Sentiment         float64  `json:"sentiment"`
	Emotion           string   `json:"emotion"`
	Suggestion        string   `json:"suggestion"`
	BreathingExercise string   `json:"breathing_exercise"`
	FocusMusic        string   `json:"focus_music"`
	CounselorInfo     string   `json:"counselor_info"`
	Quote             string   `json:"quote"`
	CounselorTips     []string `json:"counselor_tips"`

	// Transient flags, never persisted and never part of the model payload.
	IsCritical        bool               `json:"-"`
	EmergencyContacts []EmergencyContact `json:"-"`
}

// Clone returns a deep copy so stages never share slices.
func (r AnalysisRecord) Clone() AnalysisRecord {
	out := r
	if r.CounselorTips != nil {
		out.CounselorTips = append([]string(nil), r.CounselorTips...)
	}
	if r.EmergencyContacts != nil {
		out.EmergencyContacts = append([]EmergencyContact(nil), r.EmergencyContacts...)
	}
	return out
}

// Complete reports whether every durable field is populated.
func (r AnalysisRecord) Complete() bool {
	return r.Emotion != "" &&
		r.Suggestion != "" &&
		r.BreathingExercise != "" &&
		r.FocusMusic != "" &&
		r.CounselorInfo != "" &&
		r.Quote != "" &&
		len(r.CounselorTips) > 0
}

// JournalEntry is a persisted reflection with its durable analysis fields.
type JournalEntry struct {
	ID                int       `json:"id"`
	ReflectionDate    string    `json:"reflection_date"`
	OverallMood       string    `json:"overall_mood"`
	SpecificEmotions  string    `json:"specific_emotions"`
	Content           string    `json:"content"`
	Strategies        string    `json:"strategies"`
	Intensity         int       `json:"intensity"`
	LessonsLearned    string    `json:"lessons_learned"`
	TemplateName      string    `json:"template_name"`
	UserAge           int       `json:"user_age"`
	UserGender        string    `json:"user_gender"`
	UserPhone         string    `json:"user_phone,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	SentimentScore    float64   `json:"sentiment_score"`
	Emotion           string    `json:"emotion"`
	Suggestion        string    `json:"suggestion"`
	BreathingExercise string    `json:"breathing_exercise"`
	FocusMusic        string    `json:"focus_music"`
	CounselorInfo     string    `json:"counselor_info"`
	Quote             string    `json:"quote"`
	CounselorTips     []string  `json:"counselor_tips"`
}

// NewJournalEntry combines a submission with its final analysis.
func NewJournalEntry(sub JournalSubmission, rec AnalysisRecord) JournalEntry {
	return JournalEntry{
		ReflectionDate:    sub.ReflectionDate,
		OverallMood:       sub.OverallMood,
		SpecificEmotions:  strings.Join(sub.SpecificEmotions, ","),
		Content:           sub.Triggers,
		Strategies:        sub.Strategies,
		Intensity:         sub.Intensity,
		LessonsLearned:    sub.Lessons,
		TemplateName:      sub.TemplateName,
		UserAge:           sub.UserAge,
		UserGender:        sub.UserGender,
		UserPhone:         sub.UserPhone,
		SentimentScore:    rec.Sentiment,
		Emotion:           rec.Emotion,
		Suggestion:        rec.Suggestion,
		BreathingExercise: rec.BreathingExercise,
		FocusMusic:        rec.FocusMusic,
		CounselorInfo:     rec.CounselorInfo,
		Quote:             rec.Quote,
		CounselorTips:     append([]string(nil), rec.CounselorTips...),
	}
}
