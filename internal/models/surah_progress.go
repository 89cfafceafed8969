package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// MasteryLevel is the six-step memorization scale for a verse or surah
type MasteryLevel int

const (
	LevelNotStarted MasteryLevel = iota
	LevelFamiliar
	LevelPartiallyMemorized
	LevelMostlyMemorized
	LevelFullyMemorized
	LevelMastered
)

var levelNames = [...]string{
	"not_started",
	"familiar",
	"partially_memorized",
	"mostly_memorized",
	"fully_memorized",
	"mastered",
}

// Valid reports whether l lies within NotStarted..Mastered
func (l MasteryLevel) Valid() bool {
	return l >= LevelNotStarted && l <= LevelMastered
}

func (l MasteryLevel) String() string {
	if !l.Valid() {
		return "level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// ParseMasteryLevel accepts either the numeric ordinal or the snake_case name
func ParseMasteryLevel(s string) (MasteryLevel, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		l := MasteryLevel(n)
		if !l.Valid() {
			return 0, fmt.Errorf("mastery level %d out of range", n)
		}
		return l, nil
	}
	for i, name := range levelNames {
		if name == s {
			return MasteryLevel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mastery level %q", s)
}

// VerseProgress is the memorization state of a single verse
type VerseProgress struct {
	VerseID int64        `json:"verseId"`
	Level   MasteryLevel `json:"level"`
}

// UserSurahProgress aggregates a user's memorization of one surah.
// Verses holds one entry per verse in first-practiced order.
type UserSurahProgress struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"userId"`
	SurahID           int64           `json:"surahId"`
	CompletedVerses   int             `json:"completedVerses"`
	MemorizationLevel MasteryLevel    `json:"memorizationLevel"`
	LastPracticed     *time.Time      `json:"lastPracticed"`
	Verses            []VerseProgress `json:"verseProgress"`
}

// SetVerseLevel overwrites the entry for verseID or appends a new one,
// then recomputes CompletedVerses.
func (p *UserSurahProgress) SetVerseLevel(verseID int64, level MasteryLevel) {
	idx := slices.IndexFunc(p.Verses, func(v VerseProgress) bool { return v.VerseID == verseID })
	if idx >= 0 {
		p.Verses[idx].Level = level
	} else {
		p.Verses = append(p.Verses, VerseProgress{VerseID: verseID, Level: level})
	}
	p.RecomputeCompleted()
}

// VerseLevel returns the stored level for verseID, if any
func (p *UserSurahProgress) VerseLevel(verseID int64) (MasteryLevel, bool) {
	for _, v := range p.Verses {
		if v.VerseID == verseID {
			return v.Level, true
		}
	}
	return LevelNotStarted, false
}

// RecomputeCompleted sets CompletedVerses to the number of verses at Mastered
func (p *UserSurahProgress) RecomputeCompleted() {
	count := 0
	for _, v := range p.Verses {
		if v.Level == LevelMastered {
			count++
		}
	}
	p.CompletedVerses = count
}

// Clone returns a deep copy of the record
func (p *UserSurahProgress) Clone() *UserSurahProgress {
	if p == nil {
		return nil
	}
	c := *p
	c.Verses = slices.Clone(p.Verses)
	if c.Verses == nil {
		c.Verses = []VerseProgress{}
	}
	if p.LastPracticed != nil {
		t := *p.LastPracticed
		c.LastPracticed = &t
	}
	return &c
}

// SurahProgressUpdate is the payload of a direct surah-level update.
// CompletedVerses is accepted for compatibility but always recomputed from verse entries.
type SurahProgressUpdate struct {
	CompletedVerses   *int          `json:"completedVerses,omitempty"`
	MemorizationLevel *MasteryLevel `json:"memorizationLevel,omitempty"`
}

// VerseLevelResult is returned after a verse-level update
type VerseLevelResult struct {
	UserID        int64              `json:"userId"`
	VerseID       int64              `json:"verseId"`
	Level         MasteryLevel       `json:"level"`
	SurahProgress *UserSurahProgress `json:"surahProgress"`
}
