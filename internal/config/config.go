package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Keymap struct {
	Normal  map[string]string `toml:"normal"`
	Insert  map[string]string `toml:"insert"`
	Command map[string]string `toml:"command"`
}

type EditorOptions struct {
	TabWidth  int  `toml:"tab-width"`
	ASCIIOnly bool `toml:"ascii-only"`
	UndoLimit int  `toml:"undo-limit"`
	ScrollOff int  `toml:"scroll-off"`
}

type HighlightOptions struct {
	Enabled bool `toml:"enabled"`
	// Mode is "full" or "incremental".
	Mode string `toml:"mode"`
	// Engine is the preferred backend: "syntax", "treesitter" or "chroma".
	// The other two are tried after it.
	Engine string `toml:"engine"`
	// Style names a chroma style used as the base palette. Empty keeps the
	// syntax-* colours of the theme.
	Style    string `toml:"style"`
	MaxBytes int    `toml:"max-bytes"`
}

// LogOptions controls the diagnostics log. KEDIT_LOG_FILE and KEDIT_DEBUG
// override the file and force the debug level.
type LogOptions struct {
	// File defaults to kedit.log in the config directory.
	File string `toml:"file"`
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
}

// Path is the log file to open.
func (o LogOptions) Path() (string, error) {
	if o.File != "" {
		return o.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kedit.log"), nil
}

func (o LogOptions) withEnv() LogOptions {
	if v := os.Getenv("KEDIT_LOG_FILE"); v != "" {
		o.File = v
	}
	if os.Getenv("KEDIT_DEBUG") != "" {
		o.Level = "debug"
	}
	return o
}

type Theme struct {
	Theme                 string `toml:"theme"`
	Foreground            string `toml:"foreground"`
	Background            string `toml:"background"`
	StatuslineForeground  string `toml:"statusline-foreground"`
	StatuslineBackground  string `toml:"statusline-background"`
	CommandlineForeground string `toml:"commandline-foreground"`
	CommandlineBackground string `toml:"commandline-background"`
	RecordingForeground   string `toml:"recording-foreground"`
	SyntaxKeyword         string `toml:"syntax-keyword"`
	SyntaxString          string `toml:"syntax-string"`
	SyntaxComment         string `toml:"syntax-comment"`
	SyntaxType            string `toml:"syntax-type"`
	SyntaxFunction        string `toml:"syntax-function"`
	SyntaxNumber          string `toml:"syntax-number"`
	SyntaxConstant        string `toml:"syntax-constant"`
	SyntaxOperator        string `toml:"syntax-operator"`
	SyntaxPunctuation     string `toml:"syntax-punctuation"`
	SyntaxField           string `toml:"syntax-field"`
	SyntaxBuiltin         string `toml:"syntax-builtin"`
	SyntaxVariable        string `toml:"syntax-variable"`
	SyntaxParameter       string `toml:"syntax-parameter"`
}

// SyntaxColors maps scope names to the theme's syntax-* colours. Empty
// entries are left out.
func (t Theme) SyntaxColors() map[string]string {
	all := map[string]string{
		"keyword":     t.SyntaxKeyword,
		"string":      t.SyntaxString,
		"comment":     t.SyntaxComment,
		"type":        t.SyntaxType,
		"function":    t.SyntaxFunction,
		"number":      t.SyntaxNumber,
		"constant":    t.SyntaxConstant,
		"operator":    t.SyntaxOperator,
		"punctuation": t.SyntaxPunctuation,
		"field":       t.SyntaxField,
		"builtin":     t.SyntaxBuiltin,
		"variable":    t.SyntaxVariable,
		"parameter":   t.SyntaxParameter,
	}
	out := make(map[string]string, len(all))
	for scope, hex := range all {
		if hex != "" {
			out[scope] = hex
		}
	}
	return out
}

type Config struct {
	Editor    EditorOptions    `toml:"editor"`
	Highlight HighlightOptions `toml:"highlight"`
	Theme     Theme            `toml:"theme"`
	Keymap    Keymap           `toml:"keymap"`
	Log       LogOptions       `toml:"log"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:  4,
			ASCIIOnly: false,
			UndoLimit: 0,
			ScrollOff: 3,
		},
		Highlight: HighlightOptions{
			Enabled:  true,
			Mode:     "full",
			Engine:   "syntax",
			Style:    "",
			MaxBytes: 8 << 20,
		},
		Theme: Theme{
			Theme:                 "",
			Foreground:            "#B3B1AD",
			Background:            "#0A0E14",
			StatuslineForeground:  "#B3B1AD",
			StatuslineBackground:  "#0F1419",
			CommandlineForeground: "#B3B1AD",
			CommandlineBackground: "#0F1419",
			RecordingForeground:   "#F07178",
			SyntaxKeyword:         "#FFA759",
			SyntaxString:          "#BAE67E",
			SyntaxComment:         "#5C6773",
			SyntaxType:            "#5CCFE6",
			SyntaxFunction:        "#FFD173",
			SyntaxNumber:          "#D4BFFF",
			SyntaxConstant:        "#FFDD8E",
			SyntaxOperator:        "#F29668",
			SyntaxPunctuation:     "#C0C0C0",
			SyntaxField:           "#E6B673",
			SyntaxBuiltin:         "#73D0FF",
			SyntaxVariable:        "#B3B1AD",
			SyntaxParameter:       "#B3B1AD",
		},
		Log: LogOptions{
			Level: "info",
		},
		Keymap: Keymap{
			Normal: map[string]string{
				"h":         "move_left",
				"j":         "move_down",
				"k":         "move_up",
				"l":         "move_right",
				"left":      "move_left",
				"down":      "move_down",
				"up":        "move_up",
				"right":     "move_right",
				"alt+h":     "word_left",
				"alt+l":     "word_right",
				"home":      "line_start",
				"end":       "line_end",
				"d":         "delete_line",
				"u":         "undo",
				"o":         "redo",
				"enter":     "enter_insert",
				"alt+enter": "insert_line_below",
				"<":         "insert_line_start",
				">":         "insert_line_end",
				"?":         "enter_command",
				"v":         "enter_select",
				"/":         "toggle_comment",
				"w":         "save",
				"\\":        "toggle_record",
				"alt+.":     "replay_macro",
				"alt+;":     "search_backward",
				"alt+'":     "search_forward",
				"n":         "search_forward",
				"N":         "search_backward",
				"ctrl+q":    "quit",
			},
			Insert: map[string]string{
				"esc":           "enter_normal",
				"left":          "move_left",
				"right":         "move_right",
				"up":            "move_up",
				"down":          "move_down",
				"backspace":     "backspace",
				"alt+backspace": "delete_word",
				"enter":         "newline",
				"tab":           "insert_tab",
				"alt+v":         "enter_select",
			},
			Command: map[string]string{
				"esc":           "cancel",
				"ctrl+c":        "cancel",
				"enter":         "confirm",
				"backspace":     "backspace",
				"alt+backspace": "delete_word",
				"ctrl+w":        "delete_word",
				"left":          "move_left",
				"right":         "move_right",
				"ctrl+b":        "move_left",
				"ctrl+f":        "move_right",
				"home":          "line_start",
				"end":           "line_end",
				"ctrl+a":        "line_start",
				"ctrl+e":        "line_end",
				"ctrl+u":        "clear_line",
				"ctrl+k":        "kill_line",
			},
		},
	}
}

// Load reads config.toml over the defaults. A missing file is not an
// error.
func Load() (Config, error) {
	cfg, err := load()
	cfg.Log = cfg.Log.withEnv()
	return cfg, err
}

func load() (Config, error) {
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
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if md.IsDefined("editor", "ascii-only") {
		cfg.Editor.ASCIIOnly = userCfg.Editor.ASCIIOnly
	}
	if userCfg.Editor.UndoLimit > 0 {
		cfg.Editor.UndoLimit = userCfg.Editor.UndoLimit
	}
	if md.IsDefined("editor", "scroll-off") {
		cfg.Editor.ScrollOff = userCfg.Editor.ScrollOff
	}
	if md.IsDefined("highlight", "enabled") {
		cfg.Highlight.Enabled = userCfg.Highlight.Enabled
	}
	if userCfg.Highlight.Mode != "" {
		cfg.Highlight.Mode = userCfg.Highlight.Mode
	}
	if userCfg.Highlight.Engine != "" {
		cfg.Highlight.Engine = userCfg.Highlight.Engine
	}
	if userCfg.Highlight.Style != "" {
		cfg.Highlight.Style = userCfg.Highlight.Style
	}
	if md.IsDefined("highlight", "max-bytes") {
		cfg.Highlight.MaxBytes = userCfg.Highlight.MaxBytes
	}
	if userCfg.Log.File != "" {
		cfg.Log.File = userCfg.Log.File
	}
	if userCfg.Log.Level != "" {
		cfg.Log.Level = userCfg.Log.Level
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
	for k, v := range userCfg.Keymap.Normal {
		cfg.Keymap.Normal[k] = v
	}
	for k, v := range userCfg.Keymap.Insert {
		cfg.Keymap.Insert[k] = v
	}
	for k, v := range userCfg.Keymap.Command {
		cfg.Keymap.Command[k] = v
	}

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.CommandlineForeground != "" {
		dst.CommandlineForeground = src.CommandlineForeground
	}
	if src.CommandlineBackground != "" {
		dst.CommandlineBackground = src.CommandlineBackground
	}
	if src.RecordingForeground != "" {
		dst.RecordingForeground = src.RecordingForeground
	}
	if src.SyntaxKeyword != "" {
		dst.SyntaxKeyword = src.SyntaxKeyword
	}
	if src.SyntaxString != "" {
		dst.SyntaxString = src.SyntaxString
	}
	if src.SyntaxComment != "" {
		dst.SyntaxComment = src.SyntaxComment
	}
	if src.SyntaxType != "" {
		dst.SyntaxType = src.SyntaxType
	}
	if src.SyntaxFunction != "" {
		dst.SyntaxFunction = src.SyntaxFunction
	}
	if src.SyntaxNumber != "" {
		dst.SyntaxNumber = src.SyntaxNumber
	}
	if src.SyntaxConstant != "" {
		dst.SyntaxConstant = src.SyntaxConstant
	}
	if src.SyntaxOperator != "" {
		dst.SyntaxOperator = src.SyntaxOperator
	}
	if src.SyntaxPunctuation != "" {
		dst.SyntaxPunctuation = src.SyntaxPunctuation
	}
	if src.SyntaxField != "" {
		dst.SyntaxField = src.SyntaxField
	}
	if src.SyntaxBuiltin != "" {
		dst.SyntaxBuiltin = src.SyntaxBuiltin
	}
	if src.SyntaxVariable != "" {
		dst.SyntaxVariable = src.SyntaxVariable
	}
	if src.SyntaxParameter != "" {
		dst.SyntaxParameter = src.SyntaxParameter
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads theme/<name>.toml. The file may be flat or wrapped in a
// [theme] table.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	md, err := toml.Decode(string(data), &wrap)
	if err != nil {
		return Theme{}, err
	}
	if md.IsDefined("theme") {
		return wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("KEDIT_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "kedit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
