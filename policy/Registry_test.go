package policy

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/yyc3/adaptive/features"
)

func TestRegistryStartsWithActiveDefault(t *testing.T) {
	r := NewRegistry(192382)

	active := r.Active()
	if active == nil {
		t.Fatal("expected an active policy after initialization")
	}
	if active.Name != DefaultName {
		t.Errorf("expected active policy %q, got %q", DefaultName, active.Name)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 policy, got %v", r.Len())
	}
}

func TestSwitchActiveUnknownIsNoOp(t *testing.T) {
	r := NewRegistry(192382)
	before := r.Active().ID

	if r.SwitchActive("missing") {
		t.Error("expected false for an unknown id")
	}
	if r.Active().ID != before {
		t.Error("active policy changed on a failed switch")
	}
}

func TestTransferScalesWeightsAndZeroesMetrics(t *testing.T) {
	r := NewRegistry(192382)
	source := r.Active()
	source.Metrics.AverageReward = 3.0
	source.Metrics.SuccessRate = 0.5

	transferred, err := r.Transfer(source.ID, "related-task", 0.5)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < features.Length; i++ {
		want := source.Weights().AtVec(i) * 0.5
		if got := transferred.Weights().AtVec(i); got != want {
			t.Errorf("weight %v: expected %v, got %v", i, want, got)
		}
	}
	if transferred.Metrics != (Metrics{}) {
		t.Errorf("expected zeroed metrics, got %+v", transferred.Metrics)
	}
	if transferred.ID == source.ID {
		t.Error("expected a fresh id for the transferred policy")
	}
	if transferred.Name != "related-task" {
		t.Errorf("expected name related-task, got %v", transferred.Name)
	}
	if _, ok := r.Get(transferred.ID); !ok {
		t.Error("transferred policy was not registered")
	}
}

func TestTransferUnknownSource(t *testing.T) {
	r := NewRegistry(192382)

	_, err := r.Transfer("missing", "target", 0.5)
	if !IsNotFound(err) {
		t.Errorf("expected a not-found error, got %v", err)
	}
}

func TestBestRanksByCompositeScore(t *testing.T) {
	r := NewRegistry(192382)
	a := r.Active()
	a.Metrics.AverageReward = 20.0
	a.Metrics.SuccessRate = 0.5 // score 10

	b := r.Create("second")
	b.Metrics.AverageReward = 8.0
	b.Metrics.SuccessRate = 0.5 // score 4

	if best := r.Best(); best.ID != a.ID {
		t.Errorf("expected %v to win, got %v", a.ID, best.ID)
	}
}

func TestBestBreaksTiesByFirstSeen(t *testing.T) {
	r := NewRegistry(192382)
	a := r.Active()
	b := r.Create("second")

	a.Metrics.AverageReward, a.Metrics.SuccessRate = 2.0, 0.5
	b.Metrics.AverageReward, b.Metrics.SuccessRate = 1.0, 1.0

	if best := r.Best(); best.ID != a.ID {
		t.Errorf("expected the first-seen policy to win the tie, got %v",
			best.ID)
	}
}

func TestCompareReportsMetricsAndWinner(t *testing.T) {
	r := NewRegistry(192382)
	a := r.Active()
	a.Metrics.AverageReward, a.Metrics.SuccessRate = 5.0, 0.8

	b := r.Create("second")
	b.Metrics.AverageReward, b.Metrics.SuccessRate = 6.0, 0.1

	result, err := r.Compare(a.ID, b.ID)
	if err != nil {
		t.Fatal(err)
	}

	if result.WinnerID != a.ID {
		t.Errorf("expected composite winner %v, got %v", a.ID, result.WinnerID)
	}
	if result.AverageReward.WinnerID != b.ID {
		t.Errorf("expected %v to win on average reward", b.ID)
	}
	if result.SuccessRate.WinnerID != a.ID {
		t.Errorf("expected %v to win on success rate", a.ID)
	}
	if math.Abs(result.AverageReward.A-5.0) > 1e-12 ||
		math.Abs(result.AverageReward.B-6.0) > 1e-12 {
		t.Errorf("unexpected average reward breakdown: %+v",
			result.AverageReward)
	}
}

func TestCompareIsSymmetric(t *testing.T) {
	r := NewRegistry(192382)
	a := r.Active()
	a.Metrics.AverageReward, a.Metrics.SuccessRate = 5.0, 0.8

	b := r.Create("second")
	b.Metrics.AverageReward, b.Metrics.SuccessRate = 6.0, 0.1

	forward, err := r.Compare(a.ID, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	backward, err := r.Compare(b.ID, a.ID)
	if err != nil {
		t.Fatal(err)
	}

	if forward.WinnerID != backward.WinnerID {
		t.Errorf("winner changed under operand swap: %v vs %v",
			forward.WinnerID, backward.WinnerID)
	}
}

func TestCompareUnknownOperand(t *testing.T) {
	r := NewRegistry(192382)

	if _, err := r.Compare(r.Active().ID, "missing"); !IsNotFound(err) {
		t.Errorf("expected a not-found error, got %v", err)
	}
	if _, err := r.Compare("missing", r.Active().ID); !IsNotFound(err) {
		t.Errorf("expected a not-found error, got %v", err)
	}
}

func TestExportReturnsDeepCopyOrNil(t *testing.T) {
	r := NewRegistry(192382)
	p := r.Active()

	exported := r.Export(p.ID)
	if exported == nil {
		t.Fatal("expected an exported policy")
	}
	exported.Weights().SetVec(0, 42.0)
	if p.Weights().AtVec(0) == 42.0 {
		t.Error("mutating the export changed the registered policy")
	}

	if r.Export("missing") != nil {
		t.Error("expected nil for an unknown id")
	}
}

func TestImportOverwritesSameID(t *testing.T) {
	r := NewRegistry(192382)
	original := r.Active()

	replacement := original.Clone()
	replacement.Name = "imported"
	r.Import(replacement)

	if r.Len() != 1 {
		t.Errorf("expected import to overwrite, got %v policies", r.Len())
	}
	got, _ := r.Get(original.ID)
	if got.Name != "imported" {
		t.Errorf("expected the imported entry, got %q", got.Name)
	}
}

func TestRegistrySetWeights(t *testing.T) {
	r := NewRegistry(192382)
	p := r.Active()

	fresh := mat.NewVecDense(features.Length, nil)
	fresh.SetVec(0, 7.0)
	if err := r.SetWeights(p.ID, fresh); err != nil {
		t.Fatal(err)
	}
	if p.Weights().AtVec(0) != 7.0 {
		t.Error("weights were not replaced")
	}

	if err := r.SetWeights("missing", fresh); !IsNotFound(err) {
		t.Errorf("expected a not-found error, got %v", err)
	}
}
