package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/vmath"
)

func TestRegistry_Names(t *testing.T) {
	InitRegistry()

	et, ok := GetEventType("NodeCreated")
	require.True(t, ok)
	assert.Equal(t, EventNodeCreated, et)
	assert.Equal(t, "GraphCleared", GetEventName(EventGraphCleared))
	assert.Equal(t, "EventType(999)", GetEventName(EventType(999)))

	_, ok = GetEventType("NoSuchEvent")
	assert.False(t, ok)
}

func TestRegistry_PayloadCodec(t *testing.T) {
	in := &NodeCreatedPayload{
		NodeID:   core.NewNodeID(),
		GraphID:  core.NewGraphID(),
		Position: vmath.V3(1.5, -2, 0),
		Label:    "gateway",
	}

	data, err := EncodePayload(in)
	require.NoError(t, err)

	out, err := DecodePayload(EventNodeCreated, data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRegistry_DecodeErrors(t *testing.T) {
	_, err := DecodePayload(EventDomainCommand, []byte(`{}`))
	assert.Error(t, err)

	_, err = DecodePayload(EventNodeRemoved, []byte(`{not json`))
	assert.Error(t, err)
}

func TestJournaled(t *testing.T) {
	assert.True(t, Journaled(EventNodeCreated))
	assert.True(t, Journaled(EventGraphCleared))
	assert.False(t, Journaled(EventDomainCommand))
	assert.False(t, Journaled(EventSoundRequest))
}

func TestGraphIDOf(t *testing.T) {
	g := core.NewGraphID()
	assert.Equal(t, string(g), GraphIDOf(&EdgeWeightChangedPayload{GraphID: g}))
	assert.Empty(t, GraphIDOf(&SoundRequestPayload{}))
	assert.Empty(t, GraphIDOf(nil))
}
