package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type GovernanceMetrics struct {
	ProposalsCreated     metrics.Counter
	ProposalsFinalized   metrics.Counter
	ReferendumsCreated   metrics.Counter
	ReferendumsFinalized metrics.Counter
	BallotsCast          metrics.Counter
}

func (g *GovernanceMetrics) AddProposalsCreated(n int) {
	g.ProposalsCreated.Add(float64(n))
}
func (g *GovernanceMetrics) AddProposalsFinalized(n int) {
	g.ProposalsFinalized.Add(float64(n))
}
func (g *GovernanceMetrics) AddReferendumsCreated(n int) {
	g.ReferendumsCreated.Add(float64(n))
}
func (g *GovernanceMetrics) AddReferendumsFinalized(n int) {
	g.ReferendumsFinalized.Add(float64(n))
}
func (g *GovernanceMetrics) AddBallotsCast(n int) {
	g.BallotsCast.Add(float64(n))
}

func PromGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		ProposalsCreated: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "proposals_created_total",
			Help:      "Total number of proposals created.",
		}, []string{}),
		ProposalsFinalized: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "proposals_finalized_total",
			Help:      "Total number of proposals finalized.",
		}, []string{}),
		ReferendumsCreated: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "referendums_created_total",
			Help:      "Total number of referendums created.",
		}, []string{}),
		ReferendumsFinalized: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "referendums_finalized_total",
			Help:      "Total number of referendums finalized.",
		}, []string{}),
		BallotsCast: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "ballots_cast_total",
			Help:      "Total number of ballots recorded.",
		}, []string{}),
	}
}

func NopGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		ProposalsCreated:     discard.NewCounter(),
		ProposalsFinalized:   discard.NewCounter(),
		ReferendumsCreated:   discard.NewCounter(),
		ReferendumsFinalized: discard.NewCounter(),
		BallotsCast:          discard.NewCounter(),
	}
}
