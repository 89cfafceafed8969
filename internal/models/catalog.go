package models

// Category groups quizzes by topic (Aqeedah, Seerah, Fiqh, ...)
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Quiz is a set of questions belonging to one category
type Quiz struct {
	ID         int64      `json:"id"`
	CategoryID int64      `json:"categoryId"`
	Title      string     `json:"title"`
	Questions  []Question `json:"questions,omitempty"`
}

// Question is a single multiple-choice question
type Question struct {
	ID           int64    `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Surah is a chapter of the Quran
type Surah struct {
	ID              int64  `json:"id"`
	Number          int    `json:"number"`
	Name            string `json:"name"`
	ArabicName      string `json:"arabicName"`
	Transliteration string `json:"transliteration"`
	VerseCount      int    `json:"verseCount"`
}

// Verse is a single ayah of a surah
type Verse struct {
	ID           int64         `json:"id"`
	SurahID      int64         `json:"surahId"`
	Number       int           `json:"number"`
	ArabicText   string        `json:"arabicText"`
	Translations []Translation `json:"translations,omitempty"`
}

// Translation is a verse rendering in one language
type Translation struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}
