package page

// Canonical key codes handled by the selector page.
const (
	KeySpace = 32
	KeyLeft  = 37
	KeyUp    = 38
	KeyRight = 39
	KeyDown  = 40
	KeyF10   = 121
)

// KeyMap maps alternative keys to canonical key codes.
var KeyMap = map[int]int{
	13: KeySpace, // Enter
	65: KeyLeft,  // A
	68: KeyRight, // D
	83: KeyDown,  // S
	87: KeyUp,    // W
}

// TranslateKeyCode converts alternative key codes to canonical ones.
func TranslateKeyCode(keyCode int) int {
	if mapped, ok := KeyMap[keyCode]; ok {
		return mapped
	}
	return keyCode
}

// Frequency steps for the arrow keys, in Hz.
const (
	FineStep   = 1.0
	CoarseStep = 10.0
)
