package model

type ConfirmSignUp struct {
	Username string `mapstructure:"username" validate:"required"`
	Code     string `mapstructure:"code" validate:"required"`
}
