package vm

import (
	"encoding/json"
	"io"
	"sort"
)

// InstructionStats tracks how often one mnemonic executed.
type InstructionStats struct {
	Mnemonic string `json:"mnemonic"`
	Count    uint64 `json:"count"`
}

// PerformanceStatistics accumulates an instruction-mix histogram across a
// run, written out as JSON on request.
type PerformanceStatistics struct {
	Enabled bool

	TotalSteps uint64
	counts     map[string]uint64
}

// NewPerformanceStatistics creates an empty, enabled statistics collector.
func NewPerformanceStatistics() *PerformanceStatistics {
	return &PerformanceStatistics{Enabled: true, counts: make(map[string]uint64)}
}

// RecordStep tallies one executed instruction.
func (s *PerformanceStatistics) RecordStep(mnemonic string) {
	if !s.Enabled {
		return
	}
	s.TotalSteps++
	s.counts[mnemonic]++
}

// Histogram returns per-mnemonic counts sorted by descending count, ties
// broken alphabetically.
func (s *PerformanceStatistics) Histogram() []InstructionStats {
	out := make([]InstructionStats, 0, len(s.counts))
	for m, c := range s.counts {
		out = append(out, InstructionStats{Mnemonic: m, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Mnemonic < out[j].Mnemonic
	})
	return out
}

// WriteJSON writes the collected statistics to w as JSON.
func (s *PerformanceStatistics) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(struct {
		TotalSteps uint64             `json:"total_steps"`
		ByMnemonic []InstructionStats `json:"by_mnemonic"`
	}{s.TotalSteps, s.Histogram()})
}
