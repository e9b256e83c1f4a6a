package repository

import "context"

type Translation struct {
	Name string `dynamodbav:"name" json:"name"`
}

type Club struct {
	ID               int64                  `db:"id" dynamodbav:"id"`
	Name             string                 `db:"name" dynamodbav:"name"`
	City             string                 `db:"city" dynamodbav:"city"`
	YearFounded      int                    `db:"year_founded" dynamodbav:"year_founded"`
	TranslationCache map[string]Translation `db:"translation_cache" dynamodbav:"translationCache,omitempty"`
	Version          int64                  `db:"version" dynamodbav:"version"`
}

type ClubPatch struct {
	ID          int64   `db:"id"`
	Name        *string `db:"name"`
	City        *string `db:"city"`
	YearFounded *int    `db:"year_founded"`
}

func (p *ClubPatch) Empty() bool {
	return p.Name == nil && p.City == nil && p.YearFounded == nil
}

type ClubRepository interface {
	// Get returns ErrNotFound when the club does not exist.
	Get(ctx context.Context, id int64) (*Club, error)
	List(ctx context.Context) ([]*Club, error)
	// Put creates or silently replaces the club with the same id.
	Put(ctx context.Context, club *Club) error
	// Update applies the non-nil fields of patch and bumps the version.
	Update(ctx context.Context, patch *ClubPatch) (*Club, error)
	// UpdateTranslations replaces the translation cache if the stored version
	// still equals expectedVersion, otherwise it returns ErrVersionConflict.
	UpdateTranslations(ctx context.Context, id int64, cache map[string]Translation, expectedVersion int64) error
	Delete(ctx context.Context, id int64) error
}

func copyTranslations(in map[string]Translation) map[string]Translation {
	if in == nil {
		return nil
	}
	out := make(map[string]Translation, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (c *Club) clone() *Club {
	cp := *c
	cp.TranslationCache = copyTranslations(c.TranslationCache)
	return &cp
}
