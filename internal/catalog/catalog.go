// Package catalog serves the read-only content catalog (categories, quizzes,
// surahs, verses) loaded once from a JSON document.
package catalog

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"ilmkids/internal/models"
)

// document is the on-disk layout of the catalog file
type document struct {
	Categories []models.Category `json:"categories"`
	Quizzes    []models.Quiz     `json:"quizzes"`
	Surahs     []models.Surah    `json:"surahs"`
	Verses     []models.Verse    `json:"verses"`
}

// Catalog is an immutable, indexed view of the content document
type Catalog struct {
	categories map[int64]*models.Category
	quizzes    map[int64]*models.Quiz
	surahs     map[int64]*models.Surah
	verses     map[int64]*models.Verse
	bySurah    map[int64][]int64
}

// LoadFile reads and indexes the catalog at path
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a catalog document and checks its references
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return New(doc.Categories, doc.Quizzes, doc.Surahs, doc.Verses)
}

// New indexes the given content. Every quiz must reference a known category
// and every verse a known surah; ids must be unique per kind.
func New(categories []models.Category, quizzes []models.Quiz, surahs []models.Surah, verses []models.Verse) (*Catalog, error) {
	c := &Catalog{
		categories: make(map[int64]*models.Category, len(categories)),
		quizzes:    make(map[int64]*models.Quiz, len(quizzes)),
		surahs:     make(map[int64]*models.Surah, len(surahs)),
		verses:     make(map[int64]*models.Verse, len(verses)),
		bySurah:    make(map[int64][]int64),
	}

	for i := range categories {
		cat := categories[i]
		if _, dup := c.categories[cat.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %d", cat.ID)
		}
		c.categories[cat.ID] = &cat
	}
	for i := range quizzes {
		q := quizzes[i]
		if _, dup := c.quizzes[q.ID]; dup {
			return nil, fmt.Errorf("duplicate quiz id %d", q.ID)
		}
		if _, ok := c.categories[q.CategoryID]; !ok {
			return nil, fmt.Errorf("quiz %d references unknown category %d", q.ID, q.CategoryID)
		}
		c.quizzes[q.ID] = &q
	}
	for i := range surahs {
		s := surahs[i]
		if _, dup := c.surahs[s.ID]; dup {
			return nil, fmt.Errorf("duplicate surah id %d", s.ID)
		}
		c.surahs[s.ID] = &s
	}
	for i := range verses {
		v := verses[i]
		if _, dup := c.verses[v.ID]; dup {
			return nil, fmt.Errorf("duplicate verse id %d", v.ID)
		}
		if _, ok := c.surahs[v.SurahID]; !ok {
			return nil, fmt.Errorf("verse %d references unknown surah %d", v.ID, v.SurahID)
		}
		c.verses[v.ID] = &v
		c.bySurah[v.SurahID] = append(c.bySurah[v.SurahID], v.ID)
	}

	for surahID, ids := range c.bySurah {
		slices.SortFunc(ids, func(a, b int64) int {
			return cmp.Compare(c.verses[a].Number, c.verses[b].Number)
		})
		c.bySurah[surahID] = ids
	}

	return c, nil
}

// GetCategory returns the category or nil if unknown
func (c *Catalog) GetCategory(_ context.Context, id int64) (*models.Category, error) {
	cat, ok := c.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *cat
	return &cp, nil
}

// GetQuiz returns the quiz or nil if unknown
func (c *Catalog) GetQuiz(_ context.Context, id int64) (*models.Quiz, error) {
	q, ok := c.quizzes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	cp.Questions = slices.Clone(q.Questions)
	return &cp, nil
}

// GetSurah returns the surah or nil if unknown
func (c *Catalog) GetSurah(_ context.Context, id int64) (*models.Surah, error) {
	s, ok := c.surahs[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// GetVerse returns the verse or nil if unknown
func (c *Catalog) GetVerse(_ context.Context, id int64) (*models.Verse, error) {
	v, ok := c.verses[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	cp.Translations = slices.Clone(v.Translations)
	return &cp, nil
}

// CountQuizzes returns the size of the quiz catalog
func (c *Catalog) CountQuizzes(_ context.Context) (int, error) {
	return len(c.quizzes), nil
}

// ListQuizzes returns all quizzes ordered by id
func (c *Catalog) ListQuizzes(_ context.Context) ([]models.Quiz, error) {
	result := make([]models.Quiz, 0, len(c.quizzes))
	for _, q := range c.quizzes {
		result = append(result, *q)
	}
	slices.SortFunc(result, func(a, b models.Quiz) int { return cmp.Compare(a.ID, b.ID) })
	return result, nil
}

// VersesOfSurah returns a surah's verses in recitation order
func (c *Catalog) VersesOfSurah(_ context.Context, surahID int64) ([]models.Verse, error) {
	ids := c.bySurah[surahID]
	result := make([]models.Verse, 0, len(ids))
	for _, id := range ids {
		result = append(result, *c.verses[id])
	}
	return result, nil
}
