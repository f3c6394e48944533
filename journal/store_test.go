package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/parameter"
	"github.com/lixenwraith/graphview/vmath"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func nodeCreated(g core.GraphID, name string, x float64) event.GraphEvent {
	return event.GraphEvent{
		Type: event.EventNodeCreated,
		Payload: &event.NodeCreatedPayload{
			NodeID:   core.NodeIDFromName(g, name),
			GraphID:  g,
			Position: vmath.V3(x, 0, 0),
			Label:    name,
		},
		Frame: 3,
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.Error(t, err)
}

func TestOpenAppliesMigrationsOnce(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)

	g := core.GraphIDFromName("g")
	_, err := s.Append(ctx, g, nodeCreated(g, "a", 1))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	var count int
	require.NoError(t, reopened.sqlDB.QueryRow("SELECT COUNT(1) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	records, err := reopened.List(ctx, g, 0, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	g1 := core.GraphIDFromName("one")
	g2 := core.GraphIDFromName("two")

	seq1, err := s.Append(ctx, g1, nodeCreated(g1, "a", 1))
	require.NoError(t, err)
	seq2, err := s.Append(ctx, g2, nodeCreated(g2, "b", 2))
	require.NoError(t, err)
	seq3, err := s.Append(ctx, g1, event.GraphEvent{
		Type:    event.EventNodeRemoved,
		Payload: &event.NodeRemovedPayload{NodeID: core.NodeIDFromName(g1, "a"), GraphID: g1},
	})
	require.NoError(t, err)
	assert.Less(t, seq1, seq2)
	assert.Less(t, seq2, seq3)

	records, err := s.List(ctx, g1, 0, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, seq1, records[0].Seq)
	assert.Equal(t, "NodeCreated", records[0].TypeName)
	assert.Equal(t, event.EventNodeRemoved, records[1].Type)

	ev, err := records[0].Event()
	require.NoError(t, err)
	p, ok := ev.Payload.(*event.NodeCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, "a", p.Label)
	assert.Equal(t, vmath.V3(1, 0, 0), p.Position)
	assert.Equal(t, int64(3), ev.Frame)

	all, err := s.List(ctx, "", seq1, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, g2, all[0].GraphID)

	graphs, err := s.GraphIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.GraphID{g1, g2}, graphs)

	_, err = s.List(ctx, g1, 0, 0)
	assert.Error(t, err)
}

func TestAppendRejectsFeedbackEvents(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.Append(context.Background(), "", event.GraphEvent{
		Type:    event.EventSoundRequest,
		Payload: &event.SoundRequestPayload{SoundType: core.SoundError},
	})
	assert.ErrorIs(t, err, ErrNotJournaled)
}

func TestReplay(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)
	g := core.GraphIDFromName("replay")

	// More than one page
	total := parameter.ReplayPageSize + 5
	var seqs []int64
	for i := 0; i < total; i++ {
		seq, err := s.Append(ctx, g, nodeCreated(g, string(rune('a'+i%26))+string(rune('0'+i/26)), float64(i)))
		require.NoError(t, err)
		seqs = append(seqs, seq)
	}

	var xs []float64
	collect := ApplierFunc(func(_ context.Context, ev event.GraphEvent) error {
		xs = append(xs, ev.Payload.(*event.NodeCreatedPayload).Position.X)
		return nil
	})

	last, err := Replay(ctx, s, collect, g, ReplayOptions{})
	require.NoError(t, err)
	assert.Equal(t, seqs[total-1], last)
	require.Len(t, xs, total)
	for i, x := range xs {
		assert.Equal(t, float64(i), x)
	}

	t.Run("bounds", func(t *testing.T) {
		xs = nil
		last, err := Replay(ctx, s, collect, g, ReplayOptions{AfterSeq: seqs[1], UntilSeq: seqs[4]})
		require.NoError(t, err)
		assert.Equal(t, seqs[4], last)
		assert.Equal(t, []float64{2, 3, 4}, xs)
	})

	t.Run("filter", func(t *testing.T) {
		xs = nil
		_, err := Replay(ctx, s, collect, g, ReplayOptions{
			UntilSeq: seqs[9],
			Filter:   func(r Record) bool { return r.Seq%2 == 0 },
		})
		require.NoError(t, err)
		assert.Len(t, xs, 5)
	})

	t.Run("applier error stops replay", func(t *testing.T) {
		boom := errors.New("boom")
		n := 0
		last, err := Replay(ctx, s, ApplierFunc(func(context.Context, event.GraphEvent) error {
			n++
			if n == 3 {
				return boom
			}
			return nil
		}), g, ReplayOptions{})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, seqs[2], last)
	})
}

func TestEmitterApplier(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)
	g := core.GraphIDFromName("emit")

	_, err := s.Append(ctx, g, nodeCreated(g, "a", 0))
	require.NoError(t, err)

	q := event.NewQueue()
	_, err = Replay(ctx, s, EmitterApplier{Emitter: q}, g, ReplayOptions{})
	require.NoError(t, err)

	evs := q.Consume()
	require.Len(t, evs, 1)
	assert.Equal(t, event.EventNodeCreated, evs[0].Type)
}

func TestListCarriesGraphlessRows(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	g1 := core.GraphIDFromName("one")
	g2 := core.GraphIDFromName("two")
	_, err := s.Append(ctx, g1, nodeCreated(g1, "a", 1))
	require.NoError(t, err)
	_, err = s.Append(ctx, g2, nodeCreated(g2, "b", 2))
	require.NoError(t, err)
	clearSeq, err := s.Append(ctx, "", event.GraphEvent{
		Type:    event.EventSelectionChanged,
		Payload: &event.SelectionChangedPayload{Exclusive: true},
	})
	require.NoError(t, err)

	for _, g := range []core.GraphID{g1, g2} {
		records, err := s.List(ctx, g, 0, 10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, g, records[0].GraphID)
		assert.Equal(t, clearSeq, records[1].Seq)
		assert.Empty(t, records[1].GraphID)
	}

	graphs, err := s.GraphIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.GraphID{g1, g2}, graphs)
}
