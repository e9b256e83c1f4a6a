package model

type Translation struct {
	Name string `json:"name"`
}

type Club struct {
	ID               int64                  `json:"id"`
	Name             string                 `json:"name"`
	City             string                 `json:"city"`
	YearFounded      int                    `json:"year_founded"`
	TranslationCache map[string]Translation `json:"translationCache,omitempty"`
}

type ClubCreate struct {
	ID          int64  `json:"id" mapstructure:"id" validate:"gt=0"`
	Name        string `json:"name" mapstructure:"name" validate:"required,max=200"`
	City        string `json:"city" mapstructure:"city" validate:"required,max=200"`
	YearFounded int    `json:"year_founded" mapstructure:"year_founded" validate:"gte=0"`
}

// ClubUpdate is a partial update; nil fields are left untouched.
type ClubUpdate struct {
	Name        *string `json:"name,omitempty" mapstructure:"name" validate:"omitempty,min=1,max=200"`
	City        *string `json:"city,omitempty" mapstructure:"city" validate:"omitempty,min=1,max=200"`
	YearFounded *int    `json:"year_founded,omitempty" mapstructure:"year_founded" validate:"omitempty,gte=0"`
}

type ClubWithPlayers struct {
	Club    *Club     `json:"data"`
	Players []*Player `json:"players,omitempty"`
}

// TranslatedClub is a club whose name has been replaced by its translation.
type TranslatedClub struct {
	Club
	Language  string `json:"language,omitempty"`
	FromCache bool   `json:"fromCache"`
}
