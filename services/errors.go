package services

import (
	"errors"
	"fmt"
)

var (
	ErrStationNotFound = errors.New("station not found")
	ErrNoRoute         = errors.New("no route between stations")
)

type ErrorKind string

const (
	KindStationNotFound ErrorKind = "station_not_found"
	KindNoRoute         ErrorKind = "no_route"
)

// QueryError describes why a query produced no result.
type QueryError struct {
	Op      string
	Kind    ErrorKind
	Station string // offending name or id, if any
	Err     error
}

func (e *QueryError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Station != "" {
		base += fmt.Sprintf(" (station=%q)", e.Station)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *QueryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsKind(err error, kind ErrorKind) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind == kind
	}
	return false
}

func stationNotFound(op, station string) error {
	return &QueryError{Op: op, Kind: KindStationNotFound, Station: station, Err: ErrStationNotFound}
}
