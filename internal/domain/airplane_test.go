package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAirplane_FuelTankCapacity(t *testing.T) {
	assert.Equal(t, 200.0, Airplane{ID: 1, Passengers: 50}.FuelTankCapacity())
	assert.Equal(t, 400.0, Airplane{ID: 2, Passengers: 100}.FuelTankCapacity())
	assert.Equal(t, 200.0*1000000, Airplane{ID: 1000000, Passengers: 10}.FuelTankCapacity())
}

func TestAirplane_BaseFuelConsumption(t *testing.T) {
	assert.Equal(t, 0.0, Airplane{ID: 1}.BaseFuelConsumption())
	assert.InDelta(t, math.Log(2)*0.80, Airplane{ID: 2}.BaseFuelConsumption(), 1e-9)
	assert.InDelta(t, math.Log(1000000)*0.80, Airplane{ID: 1000000}.BaseFuelConsumption(), 1e-9)
}

func TestAirplane_TotalFuelConsumption(t *testing.T) {
	cases := []Airplane{
		{ID: 1, Passengers: 50},
		{ID: 2, Passengers: 100},
		{ID: 5, Passengers: 10000},
		{ID: 10, Passengers: 0},
	}
	for _, a := range cases {
		want := math.Log(float64(a.ID))*0.80 + float64(a.Passengers)*0.002
		assert.InDelta(t, want, a.TotalFuelConsumption(), 1e-9, "airplane %d", a.ID)
	}

	assert.Greater(t, Airplane{ID: 5, Passengers: 10000}.TotalFuelConsumption(), 20.0)
	zero := Airplane{ID: 10}
	assert.Equal(t, zero.BaseFuelConsumption(), zero.TotalFuelConsumption())
}

func TestAirplane_MaxFlightMinutes(t *testing.T) {
	for id := int64(1); id <= 50; id++ {
		for _, p := range []int64{1, 7, 75, 300} {
			a := Airplane{ID: id, Passengers: p}
			want := 200 * float64(id) / (math.Log(float64(id))*0.80 + float64(p)*0.002)
			assert.InDelta(t, want, a.MaxFlightMinutes(), 1e-6)
		}
	}

	assert.InDelta(t, 200/(50*0.002), Airplane{ID: 1, Passengers: 50}.MaxFlightMinutes(), 1e-6)
	assert.Greater(t, Airplane{ID: 1000000, Passengers: 10}.MaxFlightMinutes(), 1000.0)
	assert.Greater(t, Airplane{ID: 10}.MaxFlightMinutes(), 0.0)
}

func TestAirplane_MaxFlightMinutes_NoConsumption(t *testing.T) {
	assert.True(t, math.IsInf(Airplane{ID: 1}.MaxFlightMinutes(), 1))
	assert.Equal(t, "inf minutes", FormatFlightMinutes(Airplane{ID: 1}.MaxFlightMinutes()))
}

func TestFormat(t *testing.T) {
	a := Airplane{ID: 3, Passengers: 75}
	total := math.Log(3)*0.80 + 75*0.002
	assert.Equal(t, "1.029 liters", FormatFuelConsumption(total))
	assert.Equal(t, "583.15 minutes", FormatFlightMinutes(a.MaxFlightMinutes()))
	assert.Equal(t, "0.100 liters", FormatFuelConsumption(Airplane{ID: 1, Passengers: 50}.TotalFuelConsumption()))
	assert.Equal(t, "2000.00 minutes", FormatFlightMinutes(Airplane{ID: 1, Passengers: 50}.MaxFlightMinutes()))
}

func TestValidateAirplane(t *testing.T) {
	assert.NoError(t, ValidateAirplane(3, 50))
	assert.NoError(t, ValidateAirplane(1, 0))

	err := ValidateAirplane(0, 10)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{FieldID: MsgInvalidID}, verr.Fields)

	err = ValidateAirplane(-1, 10)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, MsgInvalidID, verr.Fields[FieldID])

	err = ValidateAirplane(5, -10)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{FieldPassengers: MsgNegativePassenger}, verr.Fields)

	err = ValidateAirplane(-1, -1)
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, "validation failed: id: "+MsgInvalidID+"; passengers: "+MsgNegativePassenger, err.Error())
}

func TestLimitMessage(t *testing.T) {
	assert.Equal(t, "You can only assess up to 10 airplanes.", LimitMessage(10))
}
