package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/airplanes/internal/domain"
	"github.com/google/uuid"
)

const EventAirplaneCreated = "airplane_created"

// AirplaneEvent carries the formatted metrics because max flight minutes can be infinite.
type AirplaneEvent struct {
	EventID                       string    `json:"event_id"`
	Type                          string    `json:"type"`
	AirplaneID                    int64     `json:"airplane_id"`
	Passengers                    int64     `json:"passengers"`
	TotalFuelConsumptionPerMinute string    `json:"total_fuel_consumption_per_minute"`
	MaxFlightMinutes              string    `json:"max_flight_minutes"`
	OccurredAt                    time.Time `json:"occurred_at"`
}

func NewAirplaneEvent(eventType string, a domain.Airplane, at time.Time) AirplaneEvent {
	return AirplaneEvent{
		EventID:                       uuid.NewString(),
		Type:                          eventType,
		AirplaneID:                    a.ID,
		Passengers:                    a.Passengers,
		TotalFuelConsumptionPerMinute: domain.FormatFuelConsumption(a.TotalFuelConsumption()),
		MaxFlightMinutes:              domain.FormatFlightMinutes(a.MaxFlightMinutes()),
		OccurredAt:                    at.UTC(),
	}
}

func DecodeAirplaneEvent(data []byte) (AirplaneEvent, error) {
	var event AirplaneEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return AirplaneEvent{}, fmt.Errorf("decode airplane event: %w", err)
	}
	if event.Type == "" {
		return AirplaneEvent{}, fmt.Errorf("decode airplane event: missing type")
	}
	return event, nil
}
