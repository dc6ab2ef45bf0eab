package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabWidth    int  `toml:"tab-width"`
	QuitTimes   int  `toml:"quit-times"`
	HideWelcome bool `toml:"hide-welcome"`
}

type Theme struct {
	Theme                string `toml:"theme"`
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	MessageForeground    string `toml:"message-foreground"`
	MessageBackground    string `toml:"message-background"`
	SelectionForeground  string `toml:"selection-foreground"`
	SelectionBackground  string `toml:"selection-background"`
	Number               string `toml:"number"`
	MatchForeground      string `toml:"match-foreground"`
	MatchBackground      string `toml:"match-background"`
	String               string `toml:"string"`
	Character            string `toml:"character"`
	Comment              string `toml:"comment"`
	MultilineComment     string `toml:"multiline-comment"`
	PrimaryKeyword       string `toml:"primary-keyword"`
	SecondaryKeyword     string `toml:"secondary-keyword"`
	Headline             string `toml:"headline"`
	TodoKeyword          string `toml:"todo-keyword"`
	DoneKeyword          string `toml:"done-keyword"`
	Tag                  string `toml:"tag"`
	ListMarker           string `toml:"list-marker"`
	Bold                 string `toml:"bold"`
	Italic               string `toml:"italic"`
	Underline            string `toml:"underline"`
	Link                 string `toml:"link"`
	CodeBlock            string `toml:"code-block"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:    4,
			QuitTimes:   3,
			HideWelcome: false,
		},
		Theme: Theme{
			Theme:                "",
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			StatuslineForeground: "#0F1419",
			StatuslineBackground: "#B3B1AD",
			MessageForeground:    "#B3B1AD",
			MessageBackground:    "#0F1419",
			SelectionForeground:  "#B3B1AD",
			SelectionBackground:  "#27425A",
			Number:               "#D4BFFF",
			MatchForeground:      "#000000",
			MatchBackground:      "#FFD700",
			String:               "#BAE67E",
			Character:            "#95E6CB",
			Comment:              "#5C6773",
			MultilineComment:     "#5C6773",
			PrimaryKeyword:       "#FFA759",
			SecondaryKeyword:     "#5CCFE6",
			Headline:             "#FFD173",
			TodoKeyword:          "#F07178",
			DoneKeyword:          "#BAE67E",
			Tag:                  "#E6B673",
			ListMarker:           "#F29668",
			Bold:                 "#FFDD8E",
			Italic:               "#D4BFFF",
			Underline:            "#73D0FF",
			Link:                 "#59C2FF",
			CodeBlock:            "#95E6CB",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.QuitTimes > 0 {
		cfg.Editor.QuitTimes = userCfg.Editor.QuitTimes
	}
	if userCfg.Editor.HideWelcome {
		cfg.Editor.HideWelcome = true
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&dst.Foreground, src.Foreground)
	set(&dst.Background, src.Background)
	set(&dst.StatuslineForeground, src.StatuslineForeground)
	set(&dst.StatuslineBackground, src.StatuslineBackground)
	set(&dst.MessageForeground, src.MessageForeground)
	set(&dst.MessageBackground, src.MessageBackground)
	set(&dst.SelectionForeground, src.SelectionForeground)
	set(&dst.SelectionBackground, src.SelectionBackground)
	set(&dst.Number, src.Number)
	set(&dst.MatchForeground, src.MatchForeground)
	set(&dst.MatchBackground, src.MatchBackground)
	set(&dst.String, src.String)
	set(&dst.Character, src.Character)
	set(&dst.Comment, src.Comment)
	set(&dst.MultilineComment, src.MultilineComment)
	set(&dst.PrimaryKeyword, src.PrimaryKeyword)
	set(&dst.SecondaryKeyword, src.SecondaryKeyword)
	set(&dst.Headline, src.Headline)
	set(&dst.TodoKeyword, src.TodoKeyword)
	set(&dst.DoneKeyword, src.DoneKeyword)
	set(&dst.Tag, src.Tag)
	set(&dst.ListMarker, src.ListMarker)
	set(&dst.Bold, src.Bold)
	set(&dst.Italic, src.Italic)
	set(&dst.Underline, src.Underline)
	set(&dst.Link, src.Link)
	set(&dst.CodeBlock, src.CodeBlock)
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("ORGED_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "orged"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "orged"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
