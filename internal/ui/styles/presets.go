package styles

// Preset is a named, complete color palette.
type Preset struct {
	Name   string
	Colors map[ColorToken]string
}

// Presets holds the built-in themes.
var Presets = map[string]Preset{
	"blue": {
		Name: "Blue",
		Colors: map[ColorToken]string{
			TokenBackground: "#0d1b2a",
			TokenForeground: "#e0e1dd",
			TokenGutterBg:   "#1b263b",
			TokenGutterFg:   "#9fb0c1",
			TokenCaret:      "#e0e1dd",
			TokenSelectBg:   "#2f3e57",
			TokenSelectFg:   "#ffffff",
			TokenAccent:     "#415a77",

			TokenSynKeyword:     "#89b4fa",
			TokenSynBuiltin:     "#89dceb",
			TokenSynString:      "#a6e3a1",
			TokenSynNumber:      "#fab387",
			TokenSynComment:     "#6c7a89",
			TokenSynOperator:    "#f38ba8",
			TokenSynFunction:    "#f9e2af",
			TokenSynClass:       "#cba6f7",
			TokenSynPunctuation: "#cdd6f4",
			TokenSynPlain:       "#e0e1dd",
		},
	},
	"green": {
		Name: "Green",
		Colors: map[ColorToken]string{
			TokenBackground: "#0f1f1a",
			TokenForeground: "#e6f4ea",
			TokenGutterBg:   "#1a3028",
			TokenGutterFg:   "#a7cdb9",
			TokenCaret:      "#e6f4ea",
			TokenSelectBg:   "#24463b",
			TokenSelectFg:   "#ffffff",
			TokenAccent:     "#2f5d50",

			TokenSynKeyword:     "#7bd389",
			TokenSynBuiltin:     "#7ad3c1",
			TokenSynString:      "#b9f6ca",
			TokenSynNumber:      "#ffd59e",
			TokenSynComment:     "#6c8f80",
			TokenSynOperator:    "#ff8a80",
			TokenSynFunction:    "#fff59d",
			TokenSynClass:       "#b39ddb",
			TokenSynPunctuation: "#dcedc8",
			TokenSynPlain:       "#e6f4ea",
		},
	},
	"purple": {
		Name: "Purple",
		Colors: map[ColorToken]string{
			TokenBackground: "#1b1325",
			TokenForeground: "#f1e6ff",
			TokenGutterBg:   "#2a1f39",
			TokenGutterFg:   "#c8b5e6",
			TokenCaret:      "#f1e6ff",
			TokenSelectBg:   "#3a2c4f",
			TokenSelectFg:   "#ffffff",
			TokenAccent:     "#5d3f79",

			TokenSynKeyword:     "#c7a0ff",
			TokenSynBuiltin:     "#a0d7ff",
			TokenSynString:      "#b5ffa0",
			TokenSynNumber:      "#ffc997",
			TokenSynComment:     "#8f84a6",
			TokenSynOperator:    "#ff9ec7",
			TokenSynFunction:    "#ffe39e",
			TokenSynClass:       "#d2a0ff",
			TokenSynPunctuation: "#e8dbff",
			TokenSynPlain:       "#f1e6ff",
		},
	},
}

// PresetNames returns the preset keys in display order.
func PresetNames() []string {
	return []string{"blue", "green", "purple"}
}
