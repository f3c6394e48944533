package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/morphism"
)

func mouse(x, y int, btn tcell.ButtonMask, mod tcell.ModMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, btn, mod)
}

func TestMachine_Click(t *testing.T) {
	m := NewMachine()

	assert.Nil(t, m.Process(mouse(5, 3, tcell.Button1, tcell.ModNone)))
	it := m.Process(mouse(5, 3, tcell.ButtonNone, tcell.ModNone))

	require.NotNil(t, it)
	assert.Equal(t, IntentClick, it.Type)
	assert.Equal(t, core.Point{X: 5, Y: 3}, it.Cell)
	assert.False(t, m.Dragging())
}

func TestMachine_ShiftClickKeepsModifiers(t *testing.T) {
	m := NewMachine()

	m.Process(mouse(1, 1, tcell.Button1, tcell.ModShift))
	it := m.Process(mouse(1, 1, tcell.ButtonNone, tcell.ModNone))

	require.NotNil(t, it)
	assert.True(t, it.Modifiers.Shift)
}

func TestMachine_Drag(t *testing.T) {
	m := NewMachine()

	m.Process(mouse(2, 2, tcell.Button1, tcell.ModNone))

	// Motion within the same cell is not a drag
	assert.Nil(t, m.Process(mouse(2, 2, tcell.Button1, tcell.ModNone)))

	it := m.Process(mouse(4, 2, tcell.Button1, tcell.ModNone))
	require.NotNil(t, it)
	assert.Equal(t, IntentDrag, it.Type)
	assert.Equal(t, core.Point{X: 2, Y: 2}, it.From)
	assert.Equal(t, core.Point{X: 4, Y: 2}, it.To)
	assert.True(t, m.Dragging())

	it = m.Process(mouse(4, 5, tcell.Button1, tcell.ModNone))
	require.NotNil(t, it)
	assert.Equal(t, core.Point{X: 4, Y: 2}, it.From)
	assert.Equal(t, core.Point{X: 4, Y: 5}, it.To)

	it = m.Process(mouse(4, 5, tcell.ButtonNone, tcell.ModNone))
	require.NotNil(t, it)
	assert.Equal(t, IntentDragEnd, it.Type)
	assert.False(t, m.Dragging())
}

func TestMachine_Hover(t *testing.T) {
	m := NewMachine()
	it := m.Process(mouse(7, 8, tcell.ButtonNone, tcell.ModNone))
	require.NotNil(t, it)
	assert.Equal(t, IntentHover, it.Type)
	assert.Equal(t, core.Point{X: 7, Y: 8}, it.Cell)
}

func TestMachine_Keys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want IntentType
		key  morphism.KeyCode
	}{
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), IntentQuit, morphism.KeyCode{}},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), IntentQuit, morphism.KeyCode{}},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), IntentKey, morphism.RuneKey('n')},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), IntentKey, morphism.SpecialKey(tcell.KeyDelete)},
		{"backspace as delete", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), IntentKey, morphism.SpecialKey(tcell.KeyDelete)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			it := m.Process(tt.ev)
			require.NotNil(t, it)
			assert.Equal(t, tt.want, it.Type)
			if tt.want == IntentKey {
				assert.Equal(t, tt.key, it.Key)
			}
		})
	}
}

func TestMachine_Resize(t *testing.T) {
	m := NewMachine()
	it := m.Process(tcell.NewEventResize(120, 40))
	require.NotNil(t, it)
	assert.Equal(t, IntentResize, it.Type)
	assert.Equal(t, core.Point{X: 120, Y: 40}, it.Cell)
}
