package match_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-propbind/internal/match"
)

func TestRankOrdersByDistance(t *testing.T) {
	ranked := match.Rank("Rigidboddy", []string{"BoxCollider", "Rigidbody", "Light", "Rigidbody2D"})
	if len(ranked) == 0 {
		t.Fatalf("expected ranked candidates")
	}
	if ranked[0].Name != "Rigidbody" {
		t.Fatalf("expected Rigidbody first, got %q (distance %d)", ranked[0].Name, ranked[0].Distance)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Distance < ranked[i-1].Distance {
			t.Fatalf("ranking not ascending at %d: %#v", i, ranked)
		}
	}
}

func TestRankTieBreaksByLengthThenLexical(t *testing.T) {
	// Both candidates are distance 1 from the query; the shorter wins, and
	// equal lengths fall back to lexical order.
	ranked := match.Rank("spin", []string{"spins", "sping", "spinner"})
	got := []string{ranked[0].Name, ranked[1].Name, ranked[2].Name}
	want := []string{"sping", "spins", "spinner"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tie-break order mismatch (-want +got):\n%s", diff)
	}
}

func TestRankIsCaseInsensitive(t *testing.T) {
	ranked := match.Rank("rigidbody", []string{"Rigidbody"})
	if ranked[0].Distance != 0 {
		t.Fatalf("expected distance 0 for case-only difference, got %d", ranked[0].Distance)
	}
}

func TestClosestLimitsResults(t *testing.T) {
	names := match.Closest("cube", []string{"Cube", "Tube", "Sphere", "Cylinder"}, 2)
	want := []string{"Cube", "Tube"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("closest mismatch (-want +got):\n%s", diff)
	}
	if got := match.Closest("cube", names, 0); got != nil {
		t.Fatalf("expected nil for k=0, got %v", got)
	}
}
