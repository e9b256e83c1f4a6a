package api

import (
	"github.com/yakoovad/club-api/internal/schema"
	"github.com/yakoovad/club-api/internal/translate"
)

const (
	schemaClubCreate            = "ClubCreate"
	schemaClubUpdate            = "ClubUpdate"
	schemaClubPath              = "ClubPath"
	schemaClubPlayerQueryParams = "ClubPlayerQueryParams"
	schemaClubPlayersPathQuery  = "ClubPlayersPathQuery"
	schemaTranslateQuery        = "TranslateQuery"
	schemaPlayerCreate          = "PlayerCreate"
	schemaConfirmSignUpBody     = "ConfirmSignUpBody"
)

var clubIDField = schema.Field{Name: "clubId", Type: schema.TypeString, Required: true, Format: schema.FormatInteger}

// languageEnum accepts every supported language and the empty string, which
// asks for the untranslated club.
func languageEnum() []string {
	return append([]string{""}, translate.SupportedLanguages()...)
}

// NewSchemaRegistry compiles every request contract. A malformed contract
// panics, which stops the process at startup.
func NewSchemaRegistry() *schema.Registry {
	return schema.MustNewRegistry(
		schema.MustCompile(schema.Definition{
			Name: schemaClubCreate,
			Fields: []schema.Field{
				{Name: "id", Type: schema.TypeInteger, Required: true},
				{Name: "name", Type: schema.TypeString, Required: true},
				{Name: "city", Type: schema.TypeString, Required: true},
				{Name: "year_founded", Type: schema.TypeInteger, Required: true},
			},
		}),
		schema.MustCompile(schema.Definition{
			Name: schemaClubUpdate,
			Fields: []schema.Field{
				{Name: "name", Type: schema.TypeString},
				{Name: "city", Type: schema.TypeString},
				{Name: "year_founded", Type: schema.TypeInteger},
			},
			MinProperties: 1,
		}),
		schema.MustCompile(schema.Definition{
			Name: schemaClubPath,
			Fields: []schema.Field{
				clubIDField,
				{Name: "players", Type: schema.TypeString, Enum: []string{"true", "false"}},
			},
			AdditionalProperties: true,
		}),
		schema.MustCompile(schema.Definition{
			Name: schemaClubPlayerQueryParams,
			Fields: []schema.Field{
				clubIDField,
				{Name: "playerName", Type: schema.TypeString},
				{Name: "position", Type: schema.TypeString},
			},
			AdditionalProperties: true,
		}),
		schema.MustCompile(schema.Definition{
			Name: schemaClubPlayersPathQuery,
			Fields: []schema.Field{
				clubIDField,
				{Name: "playerName", Type: schema.TypeString},
				{Name: "position", Type: schema.TypeString},
			},
			AdditionalProperties: true,
		}),
		schema.MustCompile(schema.Definition{
			Name: schemaTranslateQuery,
			Fields: []schema.Field{
				clubIDField,
				{Name: "language", Type: schema.TypeString, Enum: languageEnum()},
			},
			AdditionalProperties: true,
		}),
		schema.MustCompile(schema.Definition{
			Name: schemaPlayerCreate,
			Fields: []schema.Field{
				{Name: "playerName", Type: schema.TypeString, Required: true},
				{Name: "position", Type: schema.TypeString, Required: true},
				{Name: "nationality", Type: schema.TypeString},
				{Name: "value", Type: schema.TypeInteger},
				{Name: "age", Type: schema.TypeInteger},
				{Name: "appearances", Type: schema.TypeInteger},
				{Name: "club", Type: schema.TypeString},
				{Name: "league", Type: schema.TypeString},
			},
		}),
		schema.MustCompile(schema.Definition{
			Name: schemaConfirmSignUpBody,
			Fields: []schema.Field{
				{Name: "username", Type: schema.TypeString, Required: true},
				{Name: "code", Type: schema.TypeString, Required: true},
			},
		}),
	)
}
