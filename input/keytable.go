package input

import "github.com/gdamore/tcell/v2"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // q, Ctrl+C
	IntentToggleMute // m

	// Scene navigation
	IntentConfirm // Enter, Space
	IntentBack    // Esc, Backspace
	IntentStage1  // 1

	// Game scene
	IntentResetMovable // configured reset key
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Enter, Esc)
	SpecialKeys map[tcell.Key]IntentType

	// Rune bindings, matched case-insensitively for letters
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings with the given reset key
func DefaultKeyTable(reset rune) *KeyTable {
	kt := &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyCtrlC:      IntentQuit,
			tcell.KeyEnter:      IntentConfirm,
			tcell.KeyEscape:     IntentBack,
			tcell.KeyBackspace:  IntentBack,
			tcell.KeyBackspace2: IntentBack,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'm': IntentToggleMute,
			' ': IntentConfirm,
			'1': IntentStage1,
		},
	}
	kt.Runes[toLower(reset)] = IntentResetMovable
	return kt
}

// Lookup resolves a key event to an intent
func (kt *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[toLower(ev.Rune())]
	}
	return kt.SpecialKeys[ev.Key()]
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
