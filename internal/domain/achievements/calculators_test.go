package achievements

import (
	"encoding/json"
	"testing"
)

func TestPerfectWeekProgress(t *testing.T) {
	progress := ComputeProgress(CodePerfectWeek, json.RawMessage(`{"expectedDays":6}`), ProgressInput{DaysPresentLast7: 3})
	if progress != 50 {
		t.Fatalf("expected 50, got %d", progress)
	}

	progress = ComputeProgress(CodePerfectWeek, json.RawMessage(`{"expectedDays":6}`), ProgressInput{DaysPresentLast7: 7})
	if progress != 100 {
		t.Fatalf("expected cap at 100, got %d", progress)
	}
}

func TestPerfectMonthProgress(t *testing.T) {
	progress := ComputeProgress(CodePerfectMonth, json.RawMessage(`{}`), ProgressInput{DaysPresentLast30: 12})
	if progress != 50 {
		t.Fatalf("expected 50 against 24 expected days, got %d", progress)
	}
}

func TestEarlyBirdProgress(t *testing.T) {
	progress := ComputeProgress(CodeEarlyBird, json.RawMessage(`{"targetDays":5}`), ProgressInput{DaysPunctualLast7: 4})
	if progress != 80 {
		t.Fatalf("expected 80, got %d", progress)
	}
}

func TestWorkLoggerProgress(t *testing.T) {
	progress := ComputeProgress(CodeWorkLogger, json.RawMessage(`{}`), ProgressInput{DistinctLogDays7: 5})
	if progress != 100 {
		t.Fatalf("expected 100, got %d", progress)
	}
}

func TestPointsCollectorProgress(t *testing.T) {
	progress := ComputeProgress(CodePointsCollector, json.RawMessage(`{"targetPoints":500}`), ProgressInput{LifetimePoints: 125})
	if progress != 25 {
		t.Fatalf("expected 25, got %d", progress)
	}

	progress = ComputeProgress(CodePointsCollector, json.RawMessage(`{}`), ProgressInput{LifetimePoints: 9000})
	if progress != 100 {
		t.Fatalf("expected cap at 100, got %d", progress)
	}
}

func TestUnknownCodeYieldsZero(t *testing.T) {
	if progress := ComputeProgress("MARATHON", json.RawMessage(`{}`), ProgressInput{DaysPresentLast7: 7}); progress != 0 {
		t.Fatalf("expected 0 for unknown code, got %d", progress)
	}
}

func TestMalformedRequirementsYieldZero(t *testing.T) {
	if progress := ComputeProgress(CodePerfectWeek, json.RawMessage(`{"expectedDays":`), ProgressInput{DaysPresentLast7: 7}); progress != 0 {
		t.Fatalf("expected 0 for malformed requirements, got %d", progress)
	}
	if progress := ComputeProgress(CodePerfectWeek, nil, ProgressInput{DaysPresentLast7: 7}); progress != 0 {
		t.Fatalf("expected 0 for missing requirements, got %d", progress)
	}
}

func TestBuiltinDefinitionsCoverEveryCalculator(t *testing.T) {
	defs := BuiltinDefinitions()
	if len(defs) != len(calculators) {
		t.Fatalf("expected %d builtin definitions, got %d", len(calculators), len(defs))
	}
	for _, def := range defs {
		if _, ok := calculators[def.Code]; !ok {
			t.Fatalf("builtin %s has no calculator", def.Code)
		}
		if _, ok := parseRequirements(def.Requirements); !ok {
			t.Fatalf("builtin %s ships malformed requirements", def.Code)
		}
	}
}
