package espn

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/forPelevin/hoopcut/internal/types"
)

type summary struct {
	Header struct {
		ID           string `json:"id"`
		Competitions []struct {
			Competitors []struct {
				Team struct {
					DisplayName string `json:"displayName"`
				} `json:"team"`
			} `json:"competitors"`
		} `json:"competitions"`
	} `json:"header"`
	Boxscore struct {
		Players []struct {
			Statistics []struct {
				Names    []string `json:"names"`
				Athletes []struct {
					Athlete athlete  `json:"athlete"`
					Stats   []string `json:"stats"`
				} `json:"athletes"`
			} `json:"statistics"`
		} `json:"players"`
	} `json:"boxscore"`
	Plays []rawPlay `json:"plays"`
	PBP   []rawPlay `json:"pbp"`
}

type athlete struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type rawPlay struct {
	Text   string          `json:"text"`
	Clock  json.RawMessage `json:"clock"`
	Period struct {
		Number int `json:"number"`
	} `json:"period"`
	Participants []struct {
		Athlete athlete `json:"athlete"`
	} `json:"participants"`
}

func (a *Adapter) Parse(raw []byte) (types.Game, error) { return ParseFeed(raw) }

// ParseFeed decodes an ESPN summary document into a Game. Plays come from
// "plays", or "pbp" when "plays" is empty. Plays with a period number below 1
// are dropped.
func ParseFeed(b []byte) (types.Game, error) {
	var s summary
	if err := json.Unmarshal(b, &s); err != nil {
		return types.Game{}, fmt.Errorf("parse espn summary: %w", err)
	}

	g := types.Game{ID: s.Header.ID}
	if len(s.Header.Competitions) > 0 {
		for _, c := range s.Header.Competitions[0].Competitors {
			if name := strings.TrimSpace(c.Team.DisplayName); name != "" {
				g.Teams = append(g.Teams, name)
			}
		}
	}

	names := map[string]string{}
	for _, team := range s.Boxscore.Players {
		for _, group := range team.Statistics {
			for _, a := range group.Athletes {
				if a.Athlete.ID == "" {
					continue
				}
				if a.Athlete.DisplayName != "" {
					names[a.Athlete.ID] = a.Athlete.DisplayName
				}
				if len(group.Names) == 0 || len(a.Stats) == 0 {
					continue
				}
				if g.Totals == nil {
					g.Totals = map[string]map[string]string{}
				}
				line := g.Totals[a.Athlete.ID]
				if line == nil {
					line = map[string]string{}
					g.Totals[a.Athlete.ID] = line
				}
				for i, n := range group.Names {
					if i < len(a.Stats) {
						line[n] = a.Stats[i]
					}
				}
			}
		}
	}

	plays := s.Plays
	if len(plays) == 0 {
		plays = s.PBP
	}
	for _, rp := range plays {
		p, ok := types.PeriodFromIndex(rp.Period.Number)
		if !ok {
			continue
		}
		ev := types.PlayEvent{
			Text:   rp.Text,
			Period: p,
			Clock:  clockText(rp.Clock),
		}
		for _, part := range rp.Participants {
			name := part.Athlete.DisplayName
			if name == "" {
				name = names[part.Athlete.ID]
			}
			if name != "" {
				ev.Participants = append(ev.Participants, name)
			}
		}
		g.Plays = append(g.Plays, ev)
	}
	return g, nil
}

// clockText reads either {"displayValue": "12:34"} or a bare string.
func clockText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var obj struct {
		DisplayValue string `json:"displayValue"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.DisplayValue != "" {
		return obj.DisplayValue
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
