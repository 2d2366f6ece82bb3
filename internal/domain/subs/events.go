// Package subs turns a player's substitution log into on-court stints.
package subs

import (
	"regexp"
	"strings"

	"github.com/forPelevin/hoopcut/internal/textutil"
	"github.com/forPelevin/hoopcut/internal/types"
)

var reEnters = regexp.MustCompile(`^(.+?) enters the game for (.+)$`)

// ExtractEvents picks the player's substitution events out of the play-by-play.
// Recognised phrasings are "<player> subbing in", "<player> subbing out" and
// "<a> enters the game for <b>".
func ExtractEvents(plays []types.PlayEvent, player string) []types.SubstitutionEvent {
	name := textutil.Normalize(player)
	if name == "" {
		return nil
	}
	var out []types.SubstitutionEvent
	for _, p := range plays {
		if !p.Period.Valid() {
			continue
		}
		action, ok := actionFor(textutil.Normalize(p.Text), name)
		if !ok {
			continue
		}
		out = append(out, types.SubstitutionEvent{Period: p.Period, Action: action, Clock: strings.TrimSpace(p.Clock)})
	}
	return out
}

func actionFor(text, name string) (types.Action, bool) {
	switch {
	case strings.Contains(text, name+" subbing in"):
		return types.ActionIn, true
	case strings.Contains(text, name+" subbing out"):
		return types.ActionOut, true
	}
	m := reEnters.FindStringSubmatch(strings.TrimSuffix(text, "."))
	if m == nil {
		return "", false
	}
	switch name {
	case strings.TrimSpace(m[2]):
		return types.ActionOut, true
	case strings.TrimSpace(m[1]):
		return types.ActionIn, true
	}
	return "", false
}
