package store

import (
	"context"

	"github.com/battlesnakeio/snake/pb"
	"github.com/battlesnakeio/snake/rules"
	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func InstrumentStore(s Store) Store { return &metrics{s} }

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "store",
			Name:      "calls",
			Help:      "Calls processed by the store.",
		},
		[]string{"method"},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return func() { t.ObserveDuration() }
}

func init() {
	prometheus.MustRegister(storeCalls)
}

type metrics struct{ s Store }

func (m *metrics) CreateSession(c context.Context, s *pb.Session) error {
	defer instrument("CreateSession")()
	return m.s.CreateSession(c, s)
}

func (m *metrics) GetSession(c context.Context, id string) (*pb.Session, error) {
	defer instrument("GetSession")()
	return m.s.GetSession(c, id)
}

func (m *metrics) SetSessionStatus(c context.Context, id string, status rules.SessionStatus) error {
	defer instrument("SetSessionStatus")()
	return m.s.SetSessionStatus(c, id, status)
}

func (m *metrics) PushFrame(c context.Context, id string, f *pb.Frame) error {
	defer instrument("PushFrame")()
	return m.s.PushFrame(c, id, f)
}

func (m *metrics) ListFrames(c context.Context, id string, limit, offset int) ([]*pb.Frame, error) {
	defer instrument("ListFrames")()
	return m.s.ListFrames(c, id, limit, offset)
}

func (m *metrics) LatestFrame(c context.Context, id string) (*pb.Frame, error) {
	defer instrument("LatestFrame")()
	return m.s.LatestFrame(c, id)
}
