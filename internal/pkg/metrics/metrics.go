// Package metrics collects engagement and authentication counters for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface services record metrics through
type Recorder interface {
	RecordGoodVote(checked bool)
	RecordVoteConflict()
	RecordQuestionView()
	RecordLogin(success bool)
	RecordTokenRejected(reason string)
	RecordUploadFailure()
}

// Collector is the Prometheus implementation of Recorder
type Collector struct {
	goodVotes      *prometheus.CounterVec
	voteConflicts  prometheus.Counter
	questionViews  prometheus.Counter
	logins         *prometheus.CounterVec
	tokenRejected  *prometheus.CounterVec
	uploadFailures prometheus.Counter
}

// NewCollector creates a Collector and registers it with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		goodVotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hanaqna_good_votes_total",
			Help: "Good vote toggles by resulting state",
		}, []string{"action"}),
		voteConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hanaqna_vote_conflicts_total",
			Help: "Vote transactions retried after a conflict",
		}),
		questionViews: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hanaqna_question_views_total",
			Help: "Question detail views",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hanaqna_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		tokenRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hanaqna_tokens_rejected_total",
			Help: "Rejected access tokens by reason",
		}, []string{"reason"}),
		uploadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hanaqna_upload_failures_total",
			Help: "Attachment uploads that failed",
		}),
	}

	reg.MustRegister(
		c.goodVotes,
		c.voteConflicts,
		c.questionViews,
		c.logins,
		c.tokenRejected,
		c.uploadFailures,
	)

	return c
}

// RecordGoodVote records a committed toggle
func (c *Collector) RecordGoodVote(checked bool) {
	action := "unvote"
	if checked {
		action = "vote"
	}
	c.goodVotes.WithLabelValues(action).Inc()
}

// RecordVoteConflict records a retried vote transaction
func (c *Collector) RecordVoteConflict() {
	c.voteConflicts.Inc()
}

// RecordQuestionView records one detail view
func (c *Collector) RecordQuestionView() {
	c.questionViews.Inc()
}

// RecordLogin records a login attempt
func (c *Collector) RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.logins.WithLabelValues(result).Inc()
}

// RecordTokenRejected records a token rejected with reason
func (c *Collector) RecordTokenRejected(reason string) {
	c.tokenRejected.WithLabelValues(reason).Inc()
}

// RecordUploadFailure records a failed attachment upload
func (c *Collector) RecordUploadFailure() {
	c.uploadFailures.Inc()
}

// Nop discards every measurement
type Nop struct{}

func (Nop) RecordGoodVote(bool)        {}
func (Nop) RecordVoteConflict()        {}
func (Nop) RecordQuestionView()        {}
func (Nop) RecordLogin(bool)           {}
func (Nop) RecordTokenRejected(string) {}
func (Nop) RecordUploadFailure()       {}

// Handler returns the Prometheus scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
