package catalog

import "testing"

func consensusOf(value float64, spread float64, votes, sources int) ConsensusRating {
	return ConsensusRating{Value: &value, Spread: spread, TotalVotes: votes, SourceCount: sources}
}

func TestGradeConsensus_Tiers(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		check func(QualitySignals) bool
		desc  string
	}{
		{"poor", 5.4, func(q QualitySignals) bool { return q.IsPoorQuality && q.IsBelowAverage && q.IsMixedQuality }, "poor implies below-average and mixed"},
		{"belowAverageEdge", 5.5, func(q QualitySignals) bool { return !q.IsPoorQuality && q.IsBelowAverage }, "5.5 is below average but not poor"},
		{"mixed", 6.2, func(q QualitySignals) bool { return !q.IsBelowAverage && q.IsMixedQuality && !q.IsDecentQuality }, "6.2 is mixed only"},
		{"decentLow", 6.5, func(q QualitySignals) bool { return q.IsDecentQuality && !q.IsMixedQuality && !q.IsGoodQuality }, "6.5 starts decent"},
		{"decentHigh", 6.99, func(q QualitySignals) bool { return q.IsDecentQuality && !q.IsGoodQuality }, "6.99 still decent"},
		{"good", 7.0, func(q QualitySignals) bool { return q.IsGoodQuality && !q.IsDecentQuality }, "7.0 starts good"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := GradeConsensus(consensusOf(tt.value, 0, 500, 1))
			if !q.HasConfidentRating {
				t.Fatal("expected confident rating at 500 votes")
			}
			if !tt.check(q) {
				t.Errorf("value %v: %s, got %+v", tt.value, tt.desc, q)
			}
		})
	}
}

func TestGradeConsensus_ConfidenceGate(t *testing.T) {
	q := GradeConsensus(consensusOf(4.0, 0, 199, 1))

	if q.HasConfidentRating {
		t.Error("199 votes should not clear the confidence gate")
	}
	if q.IsPoorQuality || q.IsBelowAverage || q.IsGoodQuality {
		t.Errorf("tier signals must stay false without confidence, got %+v", q)
	}

	q = GradeConsensus(consensusOf(4.0, 0, 200, 1))
	if !q.HasConfidentRating || !q.IsPoorQuality {
		t.Errorf("200 votes should clear the gate and flag poor quality, got %+v", q)
	}
}

func TestGradeConsensus_CriticsLoved(t *testing.T) {
	if q := GradeConsensus(consensusOf(7.5, 0.5, 1000, 2)); !q.IsCriticsLoved {
		t.Errorf("7.5 with 1000 votes and low spread should be critics-loved, got %+v", q)
	}
	if q := GradeConsensus(consensusOf(7.5, 0.5, 999, 2)); q.IsCriticsLoved {
		t.Error("999 votes must not be critics-loved")
	}
	if q := GradeConsensus(consensusOf(8.0, 1.5, 5000, 2)); q.IsCriticsLoved {
		t.Error("high spread must block critics-loved")
	}
	if q := GradeConsensus(consensusOf(7.4, 0, 5000, 1)); q.IsCriticsLoved {
		t.Error("7.4 must not be critics-loved")
	}
}

func TestGradeConsensus_HighSpread(t *testing.T) {
	// Spread above 1.0 is high regardless of votes, given two sources.
	if q := GradeConsensus(consensusOf(7.0, 1.1, 50, 2)); !q.HasHighSpread {
		t.Error("spread 1.1 with 2 sources should be high even below the confidence gate")
	}
	// Spread of exactly 1.0 needs vote backing.
	if q := GradeConsensus(consensusOf(7.0, 1.0, 999, 2)); q.HasHighSpread {
		t.Error("spread 1.0 with 999 votes should not be high")
	}
	if q := GradeConsensus(consensusOf(7.0, 1.0, 1000, 2)); !q.HasHighSpread {
		t.Error("spread 1.0 with 1000 votes should be high")
	}
	// A single source can never disagree with itself.
	if q := GradeConsensus(consensusOf(7.0, 2.0, 5000, 1)); q.HasHighSpread {
		t.Error("one source must never flag high spread")
	}
}

func TestGradeConsensus_NilValue(t *testing.T) {
	q := GradeConsensus(ConsensusRating{})
	if q != (QualitySignals{}) {
		t.Errorf("zero consensus should produce zero signals, got %+v", q)
	}
}

func TestIsHit(t *testing.T) {
	hit := ExternalRatings{IMDb: sample(7.5, 600), TMDB: sample(7.5, 400)}
	if !IsHit(hit) {
		t.Error("mean 7.5 with 1000 votes should be a hit")
	}

	lowVotes := ExternalRatings{IMDb: sample(9.0, 999)}
	if IsHit(lowVotes) {
		t.Error("999 votes should not be a hit")
	}

	lowAvg := ExternalRatings{IMDb: sample(7.4, 5000)}
	if IsHit(lowAvg) {
		t.Error("mean 7.4 should not be a hit")
	}

	if IsHit(ExternalRatings{}) {
		t.Error("no ratings can never be a hit")
	}
}

// The badge gate uses the mean while verdicts use the median; with a skewed
// three-source set the two classifications genuinely diverge.
func TestHitGateAndConsensusCanDisagree(t *testing.T) {
	r := ExternalRatings{
		IMDb:  sample(6.6, 400),
		TMDB:  sample(6.7, 400),
		Trakt: sample(9.5, 400),
	}

	if !IsHit(r) {
		t.Fatalf("mean %v should clear the hit gate", func() float64 { a, _ := MeanRating(r); return a }())
	}
	c := Consensus(r)
	q := GradeConsensus(c)
	if q.IsGoodQuality {
		t.Errorf("median %v should grade decent, not good", *c.Value)
	}
	if !q.IsDecentQuality {
		t.Errorf("median %v should grade decent, got %+v", *c.Value, q)
	}
}
