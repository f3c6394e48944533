package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario, fails the test on unmet expectations,
// and compares the snapshot against testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./harness -update
func RunWithGolden(t *testing.T, s *Scenario) *Result {
	t.Helper()

	res, err := Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run scenario %q: %v", s.Name, err)
	}
	for _, f := range res.Failures {
		t.Errorf("scenario %q: %s", s.Name, f)
	}
	AssertGolden(t, s.Name, res.Snapshot)
	return res
}

// AssertGolden compares a snapshot against its golden file
func AssertGolden(t *testing.T, name string, snap *Snapshot) {
	t.Helper()

	data, err := snap.JSON()
	if err != nil {
		t.Fatalf("marshal snapshot %q: %v", name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
