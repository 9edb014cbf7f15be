package furshell

import (
	"encoding/json"
	"errors"
	"os"
)

// GameConfig is the user-editable settings file. A missing file yields
// defaults and is written back so the user has something to edit.
type GameConfig struct {
	Fullscreen       bool    `json:"fullscreen"`
	Monitor          string  `json:"monitor"`
	MouseSensitivity float32 `json:"mouse_sensitivity"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		Fullscreen:       false,
		Monitor:          "",
		MouseSensitivity: 0.1,
		Width:            1920,
		Height:           1080,
	}
}

func LoadGameConfig(filename string) (GameConfig, error) {
	cfg := DefaultGameConfig()

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		if saveErr := SaveGameConfig(filename, cfg); saveErr != nil {
			return cfg, saveErr
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		defaults := DefaultGameConfig()
		cfg.Width = defaults.Width
		cfg.Height = defaults.Height
	}
	return cfg, nil
}

func SaveGameConfig(filename string, cfg GameConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
