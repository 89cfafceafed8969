package models

import (
	"testing"
)

func TestUserAddBadge(t *testing.T) {
	user := &User{ID: 1, Username: "yusuf"}

	if !user.AddBadge("History Master") {
		t.Fatal("first AddBadge() should report a change")
	}
	if user.AddBadge("History Master") {
		t.Error("second AddBadge() should not report a change")
	}
	if len(user.Badges) != 1 {
		t.Errorf("badges = %v, want exactly one entry", user.Badges)
	}
	if !user.HasBadge("History Master") {
		t.Error("HasBadge() = false, want true")
	}
}

func TestUserCloneIsIndependent(t *testing.T) {
	user := &User{ID: 1, Badges: []string{"Seerah Master"}}
	clone := user.Clone()
	clone.Badges[0] = "changed"
	clone.Points = 50

	if user.Badges[0] != "Seerah Master" {
		t.Errorf("original badges mutated: %v", user.Badges)
	}
	if user.Points != 0 {
		t.Errorf("original points mutated: %d", user.Points)
	}
}

func TestProfileUpdateApply(t *testing.T) {
	name := "Maryam"
	avatar := "avatars/camel.png"
	user := &User{DisplayName: "old", Email: "keep@example.com"}

	ProfileUpdate{DisplayName: &name, AvatarURL: &avatar}.Apply(user)

	if user.DisplayName != name {
		t.Errorf("DisplayName = %q, want %q", user.DisplayName, name)
	}
	if user.AvatarURL != avatar {
		t.Errorf("AvatarURL = %q, want %q", user.AvatarURL, avatar)
	}
	if user.Email != "keep@example.com" {
		t.Errorf("Email = %q, should be untouched", user.Email)
	}
}

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleChild, true},
		{RoleParent, true},
		{Role("admin"), false},
		{Role(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Valid(); got != tt.want {
				t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestParseMasteryLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MasteryLevel
		wantErr bool
	}{
		{name: "numeric zero", input: "0", want: LevelNotStarted},
		{name: "numeric max", input: "5", want: LevelMastered},
		{name: "named", input: "partially_memorized", want: LevelPartiallyMemorized},
		{name: "named mixed case", input: " Mastered ", want: LevelMastered},
		{name: "out of range", input: "6", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "unknown name", input: "expert", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMasteryLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMasteryLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMasteryLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSurahProgressSetVerseLevel(t *testing.T) {
	p := &UserSurahProgress{UserID: 7, SurahID: 1}

	p.SetVerseLevel(12, LevelMastered)
	p.SetVerseLevel(13, LevelFamiliar)
	p.SetVerseLevel(14, LevelMastered)
	if p.CompletedVerses != 2 {
		t.Fatalf("CompletedVerses = %d, want 2", p.CompletedVerses)
	}

	p.SetVerseLevel(12, LevelFamiliar)
	if p.CompletedVerses != 1 {
		t.Errorf("CompletedVerses = %d, want 1 after downgrading verse 12", p.CompletedVerses)
	}
	if len(p.Verses) != 3 {
		t.Errorf("len(Verses) = %d, want 3 (overwrite must not append)", len(p.Verses))
	}
	if p.Verses[0].VerseID != 12 {
		t.Errorf("first verse = %d, want insertion order preserved", p.Verses[0].VerseID)
	}

	level, ok := p.VerseLevel(12)
	if !ok || level != LevelFamiliar {
		t.Errorf("VerseLevel(12) = %v, %v; want familiar, true", level, ok)
	}
}

func TestQuizResultEarnsBadge(t *testing.T) {
	score := func(n int) *int { return &n }

	tests := []struct {
		name   string
		result QuizResult
		want   bool
	}{
		{name: "completed at threshold", result: QuizResult{Completed: true, Score: score(80)}, want: true},
		{name: "completed below threshold", result: QuizResult{Completed: true, Score: score(79)}, want: false},
		{name: "not completed", result: QuizResult{Completed: false, Score: score(100)}, want: false},
		{name: "no score", result: QuizResult{Completed: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.EarnsBadge(); got != tt.want {
				t.Errorf("EarnsBadge() = %v, want %v", got, tt.want)
			}
		})
	}
}
