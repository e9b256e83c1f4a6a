package service

import (
	"github.com/yakoovad/club-api/internal/model"
	"github.com/yakoovad/club-api/internal/repository"
)

func clubFromRepo(c *repository.Club) *model.Club {
	club := &model.Club{
		ID:          c.ID,
		Name:        c.Name,
		City:        c.City,
		YearFounded: c.YearFounded,
	}
	if len(c.TranslationCache) > 0 {
		club.TranslationCache = make(map[string]model.Translation, len(c.TranslationCache))
		for lang, tr := range c.TranslationCache {
			club.TranslationCache[lang] = model.Translation{Name: tr.Name}
		}
	}
	return club
}

func playerFromRepo(p *repository.Player) *model.Player {
	return &model.Player{
		ClubID:      p.ClubID,
		PlayerName:  p.PlayerName,
		Position:    p.Position,
		Nationality: p.Nationality,
		Value:       p.Value,
		Age:         p.Age,
		Appearances: p.Appearances,
		Club:        p.Club,
		League:      p.League,
	}
}

func playersFromRepo(ps []*repository.Player) []*model.Player {
	players := make([]*model.Player, 0, len(ps))
	for _, p := range ps {
		players = append(players, playerFromRepo(p))
	}
	return players
}
