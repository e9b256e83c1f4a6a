package model

type Player struct {
	ClubID      int64  `json:"clubId"`
	PlayerName  string `json:"playerName"`
	Position    string `json:"position"`
	Nationality string `json:"nationality,omitempty"`
	Value       int64  `json:"value"`
	Age         int    `json:"age"`
	Appearances int    `json:"appearances"`
	Club        string `json:"club,omitempty"`
	League      string `json:"league,omitempty"`
}

type PlayerCreate struct {
	PlayerName  string `mapstructure:"playerName" validate:"required,max=200"`
	Position    string `mapstructure:"position" validate:"required,max=100"`
	Nationality string `mapstructure:"nationality" validate:"max=100"`
	Value       int64  `mapstructure:"value" validate:"gte=0"`
	Age         int    `mapstructure:"age" validate:"gte=0,lte=100"`
	Appearances int    `mapstructure:"appearances" validate:"gte=0"`
	Club        string `mapstructure:"club" validate:"max=200"`
	League      string `mapstructure:"league" validate:"max=200"`
}
