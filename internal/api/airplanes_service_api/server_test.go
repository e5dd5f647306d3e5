package airplanes_service_api

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/Domenick1991/airplanes/internal/repository"
	"github.com/Domenick1991/airplanes/internal/service/airplanes"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func startServer(t *testing.T, opts ...airplanes.AirplaneServiceOption) *Client {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	service := airplanes.NewAirplaneService(repository.NewMemoryAirplaneRepository(), nil, nil, opts...)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterAirplanesServiceServer(srv, NewServer(service, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn)
}

func airplaneRequest(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestServer_CreateAndList(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	_, err := client.ListAirplanes(ctx, &emptypb.Empty{})
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "No airplanes found.", status.Convert(err).Message())

	created, err := client.CreateAirplane(ctx, airplaneRequest(t, map[string]interface{}{"id": 3, "passengers": 75}))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"id":                                float64(3),
		"passengers":                        float64(75),
		"total_fuel_consumption_per_minute": "1.029 liters",
		"max_flight_minutes":                "583.15 minutes",
	}, created.AsMap())

	_, err = client.CreateAirplane(ctx, airplaneRequest(t, map[string]interface{}{"id": 1, "passengers": 50}))
	require.NoError(t, err)

	list, err := client.ListAirplanes(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, list.GetValues(), 2)
	assert.Equal(t, float64(1), list.GetValues()[0].GetStructValue().GetFields()["id"].GetNumberValue())
	assert.Equal(t, "2000.00 minutes", list.GetValues()[0].GetStructValue().GetFields()["max_flight_minutes"].GetStringValue())
}

func TestServer_CreateValidation(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	_, err := client.CreateAirplane(ctx, airplaneRequest(t, map[string]interface{}{"id": -1, "passengers": -10}))
	require.Error(t, err)

	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())

	var violations []*errdetails.BadRequest_FieldViolation
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			violations = append(violations, br.GetFieldViolations()...)
		}
	}
	require.Len(t, violations, 2)
	assert.Equal(t, "id", violations[0].GetField())
	assert.Equal(t, "Airplane ID must be a positive integer.", violations[0].GetDescription())
	assert.Equal(t, "passengers", violations[1].GetField())
	assert.Equal(t, "Passenger count cannot be negative.", violations[1].GetDescription())
}

func TestServer_CreateNonInteger(t *testing.T) {
	client := startServer(t)

	_, err := client.CreateAirplane(context.Background(), airplaneRequest(t, map[string]interface{}{"id": 2.5, "passengers": "many"}))
	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Contains(t, st.Message(), "id: A valid integer is required.")
	assert.Contains(t, st.Message(), "passengers: A valid integer is required.")
}

func TestServer_CreateLimit(t *testing.T) {
	client := startServer(t, airplanes.WithMaxAirplanes(2))
	ctx := context.Background()

	for _, id := range []int{1, 2} {
		_, err := client.CreateAirplane(ctx, airplaneRequest(t, map[string]interface{}{"id": id}))
		require.NoError(t, err)
	}

	_, err := client.CreateAirplane(ctx, airplaneRequest(t, map[string]interface{}{"id": 3}))
	st := status.Convert(err)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
	assert.Equal(t, "You can only assess up to 2 airplanes.", st.Message())
}

func TestIntField(t *testing.T) {
	s := airplaneRequest(t, map[string]interface{}{"a": 4, "b": nil, "c": 1.5, "d": "x", "e": 1e300})

	v, err := intField(s, "a")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), v)

	v, err = intField(s, "b")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), v)

	v, err = intField(s, "missing")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), v)

	for _, name := range []string{"c", "d", "e"} {
		_, err = intField(s, name)
		assert.True(t, errors.Is(err, errNotInteger), name)
	}
}
