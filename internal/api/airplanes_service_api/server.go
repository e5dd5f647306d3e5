package airplanes_service_api

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/Domenick1991/airplanes/internal/domain"
	"github.com/Domenick1991/airplanes/internal/service/airplanes"
	"github.com/sirupsen/logrus"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server implements AirplanesServiceServer on top of the airplanes use case.
type Server struct {
	airplanes airplanes.AirplaneUseCase
	log       logrus.FieldLogger
}

func NewServer(airplanes airplanes.AirplaneUseCase, log logrus.FieldLogger) *Server {
	return &Server{airplanes: airplanes, log: log}
}

func (s *Server) CreateAirplane(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, idErr := intField(req, domain.FieldID)
	passengers, passengersErr := intField(req, domain.FieldPassengers)
	if idErr != nil || passengersErr != nil {
		fields := map[string]string{}
		if idErr != nil {
			fields[domain.FieldID] = domain.MsgInvalidInteger
		}
		if passengersErr != nil {
			fields[domain.FieldPassengers] = domain.MsgInvalidInteger
		}
		return nil, invalidArgument(&domain.ValidationError{Fields: fields})
	}

	created, err := s.airplanes.Create(ctx, airplanes.CreateAirplaneInput{ID: id, Passengers: passengers})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			return nil, invalidArgument(verr)
		case errors.Is(err, domain.ErrLimitReached):
			return nil, status.Error(codes.FailedPrecondition, domain.LimitMessage(s.airplanes.MaxAirplanes()))
		}
		s.log.WithError(err).Error("unexpected error occurred while creating airplane")
		return nil, status.Error(codes.Internal, domain.MsgUnexpected)
	}
	return toPBAirplane(*created), nil
}

func (s *Server) ListAirplanes(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	list, err := s.airplanes.List(ctx)
	if err != nil {
		s.log.WithError(err).Error("unexpected error occurred while fetching airplane list")
		return nil, status.Error(codes.Internal, domain.MsgUnexpected)
	}
	if len(list) == 0 {
		return nil, status.Error(codes.NotFound, domain.MsgNoAirplanes)
	}

	resp := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(list))}
	for _, a := range list {
		resp.Values = append(resp.Values, structpb.NewStructValue(toPBAirplane(a)))
	}
	return resp, nil
}

var errNotInteger = errors.New("not an integer")

// intField reads a whole number; a missing field reads as 0.
func intField(s *structpb.Struct, name string) (int64, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return 0, nil
	}
	num, isNum := v.GetKind().(*structpb.Value_NumberValue)
	if !isNum {
		return 0, errNotInteger
	}
	f := num.NumberValue
	if f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, errNotInteger
	}
	return int64(f), nil
}

func invalidArgument(verr *domain.ValidationError) error {
	names := make([]string, 0, len(verr.Fields))
	for name := range verr.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	br := &errdetails.BadRequest{}
	for _, name := range names {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       name,
			Description: verr.Fields[name],
		})
	}

	st := status.New(codes.InvalidArgument, verr.Error())
	if detailed, err := st.WithDetails(br); err == nil {
		return detailed.Err()
	}
	return st.Err()
}

func toPBAirplane(a domain.Airplane) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":                                structpb.NewNumberValue(float64(a.ID)),
		"passengers":                        structpb.NewNumberValue(float64(a.Passengers)),
		"total_fuel_consumption_per_minute": structpb.NewStringValue(domain.FormatFuelConsumption(a.TotalFuelConsumption())),
		"max_flight_minutes":                structpb.NewStringValue(domain.FormatFlightMinutes(a.MaxFlightMinutes())),
	}}
}

var _ AirplanesServiceServer = (*Server)(nil)
