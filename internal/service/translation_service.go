package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yakoovad/club-api/internal/model"
	"github.com/yakoovad/club-api/internal/repository"
	"github.com/yakoovad/club-api/internal/translate"
	"github.com/yakoovad/club-api/pkg/logger"
)

const defaultMaxCacheAttempts = 3

// TranslationService serves club names in other languages through the
// translation cache stored on each club.
type TranslationService struct {
	clubs       repository.ClubRepository
	translator  translate.Translator
	sourceLang  string
	maxAttempts int
}

func NewTranslationService(translator translate.Translator, sourceLang string) *TranslationService {
	return &TranslationService{
		translator:  translator,
		sourceLang:  sourceLang,
		maxAttempts: defaultMaxCacheAttempts,
	}
}

// GetTranslatedName returns the club with its name in the requested language.
//
// An empty language, or the source language itself, returns the club as
// stored. A cached entry is returned without calling the translator. On a
// miss the translator is called once and the new entry is merged into the
// cache with a version check; a conflicting writer causes a re-read and
// another merge. Translator failures are never cached.
func (s *TranslationService) GetTranslatedName(ctx context.Context, clubID int64, lang string) (*model.TranslatedClub, *Error) {
	l := logger.FromContext(ctx).With(zap.Int64("club_id", clubID), zap.String("language", lang))

	club, err := s.clubs.Get(ctx, clubID)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("club not found")
		return nil, NewError(ErrorCodeNotFound, "club not found")
	}
	if err != nil {
		l.Error("failed to get club", zap.Error(err))
		return nil, NewError(ErrorCodeDependencyFailure, "failed to get club").WithCause(err)
	}

	if lang == "" || lang == s.sourceLang {
		l.Debug("no translation requested")
		return &model.TranslatedClub{Club: *clubFromRepo(club), Language: lang}, nil
	}

	if cached, ok := club.TranslationCache[lang]; ok {
		l.Debug("translation cache hit")
		res := &model.TranslatedClub{Club: *clubFromRepo(club), Language: lang, FromCache: true}
		res.Name = cached.Name
		return res, nil
	}

	l.Debug("translation cache miss")
	translated, err := s.translator.Translate(ctx, club.Name, s.sourceLang, lang)
	if errors.Is(err, translate.ErrUnsupportedLanguage) {
		l.Warn("unsupported language", zap.Error(err))
		return nil, NewError(ErrorCodeInvalidParameter, "unsupported language").WithCause(err)
	}
	if err != nil {
		l.Error("failed to translate club name", zap.Error(err))
		return nil, NewError(ErrorCodeDependencyFailure, "failed to translate club name").WithCause(err)
	}

	for attempt := 1; ; attempt++ {
		cache := make(map[string]repository.Translation, len(club.TranslationCache)+1)
		for k, v := range club.TranslationCache {
			cache[k] = v
		}
		cache[lang] = repository.Translation{Name: translated}

		err = s.clubs.UpdateTranslations(ctx, clubID, cache, club.Version)
		if err == nil {
			club.TranslationCache = cache
			club.Version++
			break
		}
		if errors.Is(err, repository.ErrNotFound) {
			l.Warn("club deleted while translating")
			return nil, NewError(ErrorCodeNotFound, "club not found")
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			l.Error("failed to store translation", zap.Error(err))
			return nil, NewError(ErrorCodeDependencyFailure, "failed to store translation").WithCause(err)
		}

		if attempt >= s.maxAttempts {
			l.Warn("translation cache not updated, too many concurrent writers", zap.Int("attempts", attempt))
			break
		}

		l.Debug("translation cache version conflict, retrying", zap.Int("attempt", attempt))
		club, err = s.clubs.Get(ctx, clubID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewError(ErrorCodeNotFound, "club not found")
		}
		if err != nil {
			l.Error("failed to re-read club", zap.Error(err))
			return nil, NewError(ErrorCodeDependencyFailure, "failed to get club").WithCause(err)
		}
	}

	res := &model.TranslatedClub{Club: *clubFromRepo(club), Language: lang}
	res.Name = translated
	return res, nil
}

func (s *TranslationService) WithClubRepo(r repository.ClubRepository) *TranslationService {
	s.clubs = r
	return s
}

func (s *TranslationService) WithMaxCacheAttempts(n int) *TranslationService {
	if n > 0 {
		s.maxAttempts = n
	}
	return s
}
