package artifacts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameInfo describes one game to process for one player.
type GameInfo struct {
	PlayerName string `json:"player_name" yaml:"player_name"`
	GameName   string `json:"game_name" yaml:"game_name"`
	EventID    ID     `json:"espn_id" yaml:"espn_id"`
	VideoPath  string `json:"video_path" yaml:"video_path"`
	PlayerID   ID     `json:"player_id,omitempty" yaml:"player_id,omitempty"`
}

// ID accepts either a JSON/YAML string or number.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", node.Line)
	}
	*id = ID(strings.TrimSpace(node.Value))
	return nil
}

func (id ID) String() string { return string(id) }

// LoadGameInfo reads a game info file. ".yaml" and ".yml" files are decoded as
// YAML, anything else as JSON.
func LoadGameInfo(path string) (GameInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return GameInfo{}, fmt.Errorf("missing game info %s: create it first", path)
		}
		return GameInfo{}, err
	}
	var info GameInfo
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &info)
	default:
		err = json.Unmarshal(b, &info)
	}
	if err != nil {
		return GameInfo{}, fmt.Errorf("parse game info %s: %w", path, err)
	}
	if err := info.Validate(); err != nil {
		return GameInfo{}, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

func (g GameInfo) Validate() error {
	switch {
	case strings.TrimSpace(g.PlayerName) == "":
		return errors.New("player_name is required")
	case strings.TrimSpace(g.GameName) == "":
		return errors.New("game_name is required")
	case g.EventID == "":
		return errors.New("espn_id is required")
	case strings.TrimSpace(g.VideoPath) == "":
		return errors.New("video_path is required")
	}
	if strings.ContainsAny(g.GameName, `/\`) || g.GameName == "." || g.GameName == ".." {
		return fmt.Errorf("game_name %q must be a single path segment", g.GameName)
	}
	return nil
}
