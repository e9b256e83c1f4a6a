package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yakoovad/club-api/internal/model"
	"github.com/yakoovad/club-api/internal/repository"
	"github.com/yakoovad/club-api/internal/translate"
)

func liverpool(version int64, cache map[string]repository.Translation) *repository.Club {
	return &repository.Club{
		ID:               1,
		Name:             "Liverpool",
		City:             "Liverpool",
		YearFounded:      1892,
		TranslationCache: cache,
		Version:          version,
	}
}

func TestTranslationService_GetTranslatedName(t *testing.T) {
	tests := []struct {
		name         string
		lang         string
		maxAttempts  int
		setupMocks   func(*MockClubRepository, *MockTranslator)
		errorCode    ErrorCode
		expectedName string
		fromCache    bool
	}{
		{
			name: "no language returns the stored name",
			lang: "",
			setupMocks: func(cr *MockClubRepository, _ *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).Return(liverpool(0, nil), nil)
			},
			expectedName: "Liverpool",
		},
		{
			name: "source language bypasses translation",
			lang: "en",
			setupMocks: func(cr *MockClubRepository, _ *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).Return(liverpool(0, nil), nil)
			},
			expectedName: "Liverpool",
		},
		{
			name: "cache hit issues no translation",
			lang: "fr",
			setupMocks: func(cr *MockClubRepository, _ *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).
					Return(liverpool(1, map[string]repository.Translation{"fr": {Name: "Liverpool (fr)"}}), nil)
			},
			expectedName: "Liverpool (fr)",
			fromCache:    true,
		},
		{
			name: "cache miss translates once and merges",
			lang: "fr",
			setupMocks: func(cr *MockClubRepository, tr *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).
					Return(liverpool(3, map[string]repository.Translation{"de": {Name: "Liverpool (de)"}}), nil)
				tr.On("Translate", mock.Anything, "Liverpool", "en", "fr").Return("Liverpool (fr)", nil).Once()
				cr.On("UpdateTranslations", mock.Anything, int64(1), map[string]repository.Translation{
					"de": {Name: "Liverpool (de)"},
					"fr": {Name: "Liverpool (fr)"},
				}, int64(3)).Return(nil).Once()
			},
			expectedName: "Liverpool (fr)",
		},
		{
			name: "translator failure is not cached",
			lang: "fr",
			setupMocks: func(cr *MockClubRepository, tr *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).Return(liverpool(0, nil), nil)
				tr.On("Translate", mock.Anything, "Liverpool", "en", "fr").Return("", errors.New("boom")).Once()
			},
			errorCode: ErrorCodeDependencyFailure,
		},
		{
			name: "unsupported language",
			lang: "xx",
			setupMocks: func(cr *MockClubRepository, tr *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).Return(liverpool(0, nil), nil)
				tr.On("Translate", mock.Anything, "Liverpool", "en", "xx").Return("", translate.ErrUnsupportedLanguage).Once()
			},
			errorCode: ErrorCodeInvalidParameter,
		},
		{
			name: "club not found",
			lang: "fr",
			setupMocks: func(cr *MockClubRepository, _ *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).Return(nil, repository.ErrNotFound)
			},
			errorCode: ErrorCodeNotFound,
		},
		{
			name: "store failure on read",
			lang: "fr",
			setupMocks: func(cr *MockClubRepository, _ *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).Return(nil, errors.New("throttled"))
			},
			errorCode: ErrorCodeDependencyFailure,
		},
		{
			name: "version conflict re-reads and merges the newer cache",
			lang: "fr",
			setupMocks: func(cr *MockClubRepository, tr *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).
					Return(liverpool(1, map[string]repository.Translation{"de": {Name: "D"}}), nil).Once()
				tr.On("Translate", mock.Anything, "Liverpool", "en", "fr").Return("F", nil).Once()
				cr.On("UpdateTranslations", mock.Anything, int64(1), map[string]repository.Translation{
					"de": {Name: "D"},
					"fr": {Name: "F"},
				}, int64(1)).Return(repository.ErrVersionConflict).Once()
				cr.On("Get", mock.Anything, int64(1)).
					Return(liverpool(2, map[string]repository.Translation{"de": {Name: "D"}, "it": {Name: "I"}}), nil).Once()
				cr.On("UpdateTranslations", mock.Anything, int64(1), map[string]repository.Translation{
					"de": {Name: "D"},
					"it": {Name: "I"},
					"fr": {Name: "F"},
				}, int64(2)).Return(nil).Once()
			},
			expectedName: "F",
		},
		{
			name:        "persistent conflicts still return the translation",
			lang:        "fr",
			maxAttempts: 2,
			setupMocks: func(cr *MockClubRepository, tr *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).Return(liverpool(1, nil), nil).Twice()
				tr.On("Translate", mock.Anything, "Liverpool", "en", "fr").Return("F", nil).Once()
				cr.On("UpdateTranslations", mock.Anything, int64(1), mock.Anything, int64(1)).
					Return(repository.ErrVersionConflict).Twice()
			},
			expectedName: "F",
		},
		{
			name: "club deleted before the cache write",
			lang: "fr",
			setupMocks: func(cr *MockClubRepository, tr *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).Return(liverpool(0, nil), nil)
				tr.On("Translate", mock.Anything, "Liverpool", "en", "fr").Return("F", nil).Once()
				cr.On("UpdateTranslations", mock.Anything, int64(1), mock.Anything, int64(0)).
					Return(repository.ErrNotFound).Once()
			},
			errorCode: ErrorCodeNotFound,
		},
		{
			name: "store failure on cache write",
			lang: "fr",
			setupMocks: func(cr *MockClubRepository, tr *MockTranslator) {
				cr.On("Get", mock.Anything, int64(1)).Return(liverpool(0, nil), nil)
				tr.On("Translate", mock.Anything, "Liverpool", "en", "fr").Return("F", nil).Once()
				cr.On("UpdateTranslations", mock.Anything, int64(1), mock.Anything, int64(0)).
					Return(errors.New("throttled")).Once()
			},
			errorCode: ErrorCodeDependencyFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clubs := new(MockClubRepository)
			translator := new(MockTranslator)
			tt.setupMocks(clubs, translator)

			svc := NewTranslationService(translator, "en").
				WithClubRepo(clubs).
				WithMaxCacheAttempts(tt.maxAttempts)

			got, err := svc.GetTranslatedName(context.Background(), 1, tt.lang)

			if tt.errorCode != "" {
				require.NotNil(t, err)
				assert.Equal(t, tt.errorCode, err.Code)
				assert.Nil(t, got)
			} else {
				require.Nil(t, err)
				assert.Equal(t, tt.expectedName, got.Name)
				assert.Equal(t, tt.fromCache, got.FromCache)
				assert.Equal(t, tt.lang, got.Language)
				assert.Equal(t, int64(1), got.ID)
			}

			clubs.AssertExpectations(t)
			translator.AssertExpectations(t)
		})
	}
}

func TestTranslationService_NoTranslatorCallWithoutLanguage(t *testing.T) {
	clubs := new(MockClubRepository)
	translator := new(MockTranslator)
	clubs.On("Get", mock.Anything, int64(1)).Return(liverpool(0, nil), nil)

	got, err := NewTranslationService(translator, "en").WithClubRepo(clubs).GetTranslatedName(context.Background(), 1, "")
	require.Nil(t, err)
	assert.Equal(t, &model.TranslatedClub{Club: model.Club{ID: 1, Name: "Liverpool", City: "Liverpool", YearFounded: 1892}}, got)

	translator.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	clubs.AssertNotCalled(t, "UpdateTranslations", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
