package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			match := true
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					match = false
				}
			}
			if match {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordGoodVote(true)
	c.RecordGoodVote(true)
	c.RecordGoodVote(false)
	c.RecordQuestionView()
	c.RecordTokenRejected("expired")

	if got := counterValue(t, reg, "hanaqna_good_votes_total", map[string]string{"action": "vote"}); got != 2 {
		t.Errorf("vote count = %v, want 2", got)
	}
	if got := counterValue(t, reg, "hanaqna_good_votes_total", map[string]string{"action": "unvote"}); got != 1 {
		t.Errorf("unvote count = %v, want 1", got)
	}
	if got := counterValue(t, reg, "hanaqna_question_views_total", nil); got != 1 {
		t.Errorf("views = %v, want 1", got)
	}
	if got := counterValue(t, reg, "hanaqna_tokens_rejected_total", map[string]string{"reason": "expired"}); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
}
