package interact

// Token is one toolbar insertion button.
type Token struct {
	// Label is drawn on the button.
	Label string
	// Insert is appended to the equation.
	Insert string
}

// Tokens are the toolbar buttons in display order. Labels use ASCII because the
// framebuffer font has no π or √ glyphs; the inserted text does not.
var Tokens = []Token{
	{Label: "pi", Insert: "π"},
	{Label: "^", Insert: "^("},
	{Label: "sqrt", Insert: "√("},
	{Label: "e", Insert: "e"},
	{Label: "log", Insert: "log("},
	{Label: "sin", Insert: "sin("},
	{Label: "cos", Insert: "cos("},
	{Label: "tan", Insert: "tan("},
	{Label: "|x|", Insert: "|x|"},
}

// InsertToken appends tok to eq.
func InsertToken(eq string, tok Token) string {
	return eq + tok.Insert
}

// Presets are the selectable equations, in order.
var Presets = []string{
	"y = x",
	"y = x^2",
	"y = x^3 - 3x",
	"y = sin(x)",
	"y = cos(x)",
	"y = tan(x)",
	"y = e^x",
	"y = log(x)",
	"y = √(x)",
	"y = |x|",
	"y = 1/x",
	"y = sin(π x)/x",
}

// Preset returns preset i, wrapping in both directions.
func Preset(i int) (int, string) {
	n := len(Presets)
	i %= n
	if i < 0 {
		i += n
	}
	return i, Presets[i]
}
