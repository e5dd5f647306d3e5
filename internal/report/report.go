package report

import (
	"context"
	"math"

	"github.com/Domenick1991/airplanes/internal/domain"
	"github.com/Domenick1991/airplanes/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Reporter writes fleet assessments to the log.
type Reporter struct {
	log logrus.FieldLogger
}

func NewReporter(log logrus.FieldLogger) *Reporter {
	return &Reporter{log: log}
}

func (r *Reporter) Send(_ context.Context, event kafka.AirplaneEvent) error {
	r.log.WithFields(logrus.Fields{
		"event_id":   event.EventID,
		"type":       event.Type,
		"airplane":   event.AirplaneID,
		"passengers": event.Passengers,
		"fuel":       event.TotalFuelConsumptionPerMinute,
		"endurance":  event.MaxFlightMinutes,
	}).Info("airplane assessed")
	return nil
}

type FleetSummary struct {
	Airplanes       int
	Passengers      int64
	FuelPerMinute   float64
	LongestAirplane int64
	LongestMinutes  float64
}

// Summarize aggregates a fleet. Airplanes with unbounded endurance win LongestAirplane.
func Summarize(fleet []domain.Airplane) FleetSummary {
	var s FleetSummary
	for _, a := range fleet {
		s.Airplanes++
		s.Passengers += a.Passengers
		s.FuelPerMinute += a.TotalFuelConsumption()

		minutes := a.MaxFlightMinutes()
		if s.LongestAirplane == 0 || minutes > s.LongestMinutes {
			s.LongestAirplane = a.ID
			s.LongestMinutes = minutes
		}
	}
	return s
}

func (r *Reporter) Summary(fleet []domain.Airplane) FleetSummary {
	s := Summarize(fleet)
	fields := logrus.Fields{
		"airplanes":  s.Airplanes,
		"passengers": s.Passengers,
		"fuel":       domain.FormatFuelConsumption(s.FuelPerMinute),
	}
	if s.Airplanes > 0 {
		fields["longest_airplane"] = s.LongestAirplane
		fields["longest_endurance"] = domain.FormatFlightMinutes(s.LongestMinutes)
	}
	if math.IsInf(s.LongestMinutes, 1) {
		r.log.WithFields(fields).Warn("fleet contains an airplane that burns no fuel")
	}
	r.log.WithFields(fields).Info("fleet summary")
	return s
}
