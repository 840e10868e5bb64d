package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestKeyTable_Lookup(t *testing.T) {
	kt := DefaultKeyTable('r')

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want IntentType
	}{
		{"quit rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), IntentQuit},
		{"ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), IntentQuit},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), IntentConfirm},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), IntentConfirm},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), IntentBack},
		{"stage one", tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone), IntentStage1},
		{"reset", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), IntentResetMovable},
		{"reset upper", tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone), IntentResetMovable},
		{"mute", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), IntentToggleMute},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kt.Lookup(tt.ev))
		})
	}
}

func TestKeyTable_CustomReset(t *testing.T) {
	kt := DefaultKeyTable('G')
	assert.Equal(t, IntentResetMovable, kt.Lookup(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)))
}
