package system

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/input"
	"github.com/lixenwraith/graphview/morphism"
	"github.com/lixenwraith/graphview/vmath"
)

func TestInteraction_ClickSelects(t *testing.T) {
	f := newFixture(t)
	id, e := f.addNode(vmath.V3(3, 3, 0))
	f.picker.at[core.Point{X: 3, Y: 3}] = e

	f.interaction.Submit(input.Intent{Type: input.IntentClick, Cell: core.Point{X: 3, Y: 3}})
	f.tick()

	out := f.outbound()
	require.Len(t, out, 1)
	assert.Equal(t, event.EventSelectionRequest, out[0].Type)
	sel := out[0].Payload.(*event.SelectionChangedPayload)
	assert.Equal(t, []core.NodeID{id}, sel.Selected)
	assert.True(t, sel.Exclusive)
	assert.Equal(t, vmath.V3(3, 3, 0), sel.WorldPos)
}

func TestInteraction_ClickEmptyClears(t *testing.T) {
	f := newFixture(t)

	f.interaction.Submit(input.Intent{Type: input.IntentClick, Cell: core.Point{X: 9, Y: 9}})
	f.tick()

	out := f.outbound()
	require.Len(t, out, 1)
	sel := out[0].Payload.(*event.SelectionChangedPayload)
	assert.Empty(t, sel.Selected)
	assert.True(t, sel.Exclusive)
}

func TestInteraction_ShiftClickToggles(t *testing.T) {
	f := newFixture(t)
	id, e := f.addNode(vmath.V3(1, 1, 0))
	f.picker.at[core.Point{X: 1, Y: 1}] = e

	shift := morphism.Modifiers{Shift: true}
	f.interaction.Submit(input.Intent{Type: input.IntentClick, Cell: core.Point{X: 1, Y: 1}, Modifiers: shift})
	f.tick()

	sel := f.outbound()[0].Payload.(*event.SelectionChangedPayload)
	assert.False(t, sel.Exclusive)
	assert.Equal(t, []core.NodeID{id}, sel.Selected)

	// Apply the selection as the domain would, then shift-click again
	f.emit(event.EventSelectionChanged, sel)
	f.tick()
	require.True(t, f.world.Components.Selected.Has(e))

	f.interaction.Submit(input.Intent{Type: input.IntentClick, Cell: core.Point{X: 1, Y: 1}, Modifiers: shift})
	f.tick()

	sel = f.outbound()[0].Payload.(*event.SelectionChangedPayload)
	assert.Empty(t, sel.Selected)
	assert.Equal(t, []core.NodeID{id}, sel.Deselected)
}

func TestInteraction_DragFoldsIntoOneMove(t *testing.T) {
	f := newFixture(t)
	id, e := f.addNode(vmath.V3(2, 2, 0))
	f.picker.at[core.Point{X: 2, Y: 2}] = e

	f.interaction.Submit(input.Intent{Type: input.IntentDrag, From: core.Point{X: 2, Y: 2}, To: core.Point{X: 3, Y: 2}})
	f.interaction.Submit(input.Intent{Type: input.IntentDrag, From: core.Point{X: 3, Y: 2}, To: core.Point{X: 5, Y: 4}})
	f.tick()

	out := f.outbound()
	require.Len(t, out, 1)
	assert.Equal(t, event.EventMoveRequest, out[0].Type)
	move := out[0].Payload.(*event.NodePositionChangedPayload)
	assert.Equal(t, id, move.NodeID)
	assert.Equal(t, vmath.V3(5, 4, 0), move.NewPosition)

	f.interaction.Submit(input.Intent{Type: input.IntentDragEnd, Cell: core.Point{X: 5, Y: 4}})
	f.tick()
	assert.Empty(t, f.outbound())
}

func TestInteraction_DragEmptySpaceIgnored(t *testing.T) {
	f := newFixture(t)
	f.addNode(vmath.V3(2, 2, 0))

	f.interaction.Submit(input.Intent{Type: input.IntentDrag, From: core.Point{X: 8, Y: 8}, To: core.Point{X: 9, Y: 9}})
	f.interaction.Submit(input.Intent{Type: input.IntentDragEnd, Cell: core.Point{X: 9, Y: 9}})
	f.tick()

	assert.Empty(t, f.outbound())
}

func TestInteraction_KeyCommands(t *testing.T) {
	f := newFixture(t)

	f.interaction.Submit(input.Intent{Type: input.IntentHover, Cell: core.Point{X: 6, Y: 7}})
	f.interaction.Submit(input.Intent{Type: input.IntentKey, Key: morphism.RuneKey('n')})
	f.interaction.Submit(input.Intent{Type: input.IntentKey, Key: morphism.RuneKey('z')})
	f.interaction.Submit(input.Intent{Type: input.IntentKey, Key: morphism.RuneKey('c')})
	f.tick()

	out := f.outbound()
	require.Len(t, out, 2)

	create := out[0].Payload.(morphism.DomainCommand)
	assert.Equal(t, morphism.CommandCreateNode, create.Kind)
	assert.Equal(t, vmath.V3(6, 7, 0), create.Position)

	assert.Equal(t, morphism.CommandConnectSelected, out[1].Payload.(morphism.DomainCommand).Kind)
}

func TestInteraction_SelectAll(t *testing.T) {
	f := newFixture(t)
	a, _ := f.addNode(vmath.V3(0, 0, 0))
	b, _ := f.addNode(vmath.V3(1, 0, 0))

	f.interaction.Submit(input.Intent{
		Type:      input.IntentKey,
		Key:       morphism.SpecialKey(tcell.KeyCtrlA),
		Modifiers: morphism.Modifiers{Ctrl: true},
	})
	f.tick()

	out := f.outbound()
	require.Len(t, out, 1)
	sel := out[0].Payload.(*event.SelectionChangedPayload)
	assert.ElementsMatch(t, []core.NodeID{a, b}, sel.Selected)
	assert.True(t, sel.Exclusive)
	assert.Equal(t, f.graph, sel.GraphID)
}
