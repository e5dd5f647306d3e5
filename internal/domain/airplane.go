package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	// FuelTankLitersPerID is the tank capacity contributed by each unit of airplane ID.
	FuelTankLitersPerID = 200
	// BaseConsumptionFactor scales ln(id) into liters per minute.
	BaseConsumptionFactor = 0.80
	// PassengerConsumption is the extra liters per minute burned per passenger.
	PassengerConsumption = 0.002
)

type Airplane struct {
	ID         int64     `json:"id"`
	Passengers int64     `json:"passengers"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a Airplane) FuelTankCapacity() float64 {
	return FuelTankLitersPerID * float64(a.ID)
}

// BaseFuelConsumption is exactly 0 for ID 1.
func (a Airplane) BaseFuelConsumption() float64 {
	return math.Log(float64(a.ID)) * BaseConsumptionFactor
}

func (a Airplane) TotalFuelConsumption() float64 {
	return a.BaseFuelConsumption() + float64(a.Passengers)*PassengerConsumption
}

// MaxFlightMinutes returns +Inf when the airplane burns no fuel at all (ID 1, no passengers).
func (a Airplane) MaxFlightMinutes() float64 {
	total := a.TotalFuelConsumption()
	if total == 0 {
		return math.Inf(1)
	}
	return a.FuelTankCapacity() / total
}

func FormatFuelConsumption(v float64) string {
	return formatFloat(v, 3) + " liters"
}

func FormatFlightMinutes(v float64) string {
	return formatFloat(v, 2) + " minutes"
}

func formatFloat(v float64, prec int) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	return fmt.Sprintf("%.*f", prec, v)
}
