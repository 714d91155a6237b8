package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"

	"github.com/mitsides06/TubeMap/logging"
	"github.com/mitsides06/TubeMap/metrics"
	"github.com/mitsides06/TubeMap/models"
	"github.com/mitsides06/TubeMap/network"
	"github.com/mitsides06/TubeMap/tube"
)

type Options struct {
	CacheSize int // 0 disables caching
	CacheTTL  time.Duration
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// RouteService answers station and path queries over one loaded map.
type RouteService struct {
	finder  *network.PathFinder
	cache   gcache.Cache // routeKey -> *network.Journey
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type PathResult struct {
	Journey *network.Journey
	Cached  bool
}

// routeKey identifies a query by the ids the names resolved to, so names
// that resolve to the same stations share cache entries.
type routeKey struct {
	From, To string
}

func (k routeKey) String() string {
	return strconv.Quote(k.From) + ">" + strconv.Quote(k.To)
}

// StationFilter narrows Stations. Zero fields match everything.
type StationFilter struct {
	Name string
	Zone int
}

func NewRouteService(tubemap *tube.TubeMap, opts Options) *RouteService {
	logger := opts.Logger
	if logger == nil {
		logger = logging.L()
	}

	rs := &RouteService{
		finder:  network.NewPathFinder(tubemap),
		metrics: opts.Metrics,
		logger:  logger,
	}

	if opts.CacheSize > 0 {
		builder := gcache.New(opts.CacheSize).LRU()
		if opts.CacheTTL > 0 {
			builder = builder.Expiration(opts.CacheTTL)
		}
		rs.cache = builder.Build()
	}

	connections := 0
	if tubemap != nil {
		connections = len(tubemap.Connections)
	}
	rs.metrics.SetGraphSize(rs.finder.Graph().Len(), connections)
	logger.Info("route.service_ready",
		"graph_stations", rs.finder.Graph().Len(),
		"connections", connections,
		"cache_size", opts.CacheSize)

	return rs
}

func (rs *RouteService) Finder() *network.PathFinder {
	return rs.finder
}

// ShortestPath finds the fastest journey between two station names.
// Unknown names and unreachable stations are reported as *QueryError; a done
// context is reported as its error.
func (rs *RouteService) ShortestPath(ctx context.Context, from, to string) (*PathResult, error) {
	const op = "route.shortest_path"
	started := time.Now()
	if err := ctx.Err(); err != nil {
		rs.metrics.ObserveQuery(metrics.ResultCanceled, started)
		return nil, err
	}

	start := rs.finder.StationByName(from)
	if start == nil {
		return nil, rs.failed(stationNotFound(op, from), from, to, started)
	}
	end := rs.finder.StationByName(to)
	if end == nil {
		return nil, rs.failed(stationNotFound(op, to), from, to, started)
	}

	key := routeKey{From: start.ID, To: end.ID}
	if rs.cache != nil {
		if v, err := rs.cache.Get(key); err == nil {
			rs.metrics.ObserveCache(true)
			rs.metrics.ObserveQuery(metrics.ResultFound, started)
			return &PathResult{Journey: v.(*network.Journey), Cached: true}, nil
		}
		rs.metrics.ObserveCache(false)
	}

	ch := rs.group.DoChan(key.String(), func() (interface{}, error) {
		j, ok := rs.finder.JourneyByID(key.From, key.To)
		if !ok {
			return nil, &QueryError{Op: op, Kind: KindNoRoute, Err: ErrNoRoute}
		}
		return j, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		rs.metrics.ObserveQuery(metrics.ResultCanceled, started)
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, rs.failed(res.Err, from, to, started)
	}

	j := res.Val.(*network.Journey)
	if rs.cache != nil {
		if err := rs.cache.Set(key, j); err != nil {
			rs.logger.Warn("route.cache_set_failed", "error", err)
		}
	}
	rs.metrics.ObserveQuery(metrics.ResultFound, started)
	rs.logger.Debug("route.found",
		"from", from,
		"to", to,
		"stations", len(j.Stations),
		"total_time", j.TotalTime,
		"shared", res.Shared,
		"elapsed", time.Since(started))

	return &PathResult{Journey: j}, nil
}

func (rs *RouteService) failed(err error, from, to string, started time.Time) error {
	result := metrics.ResultStationNotFound
	if IsKind(err, KindNoRoute) {
		result = metrics.ResultNoRoute
	}
	rs.metrics.ObserveQuery(result, started)
	rs.logger.Info("route.not_found", "from", from, "to", to, "reason", result)
	return err
}

// Stations lists stations in map order, keeping those that match f.
func (rs *RouteService) Stations(f StationFilter) []models.Station {
	list := rs.finder.TubeMap().StationList()
	out := make([]models.Station, 0, len(list))
	for _, s := range list {
		if f.Name != "" && s.Name != f.Name {
			continue
		}
		if f.Zone != 0 && !s.InZone(f.Zone) {
			continue
		}
		out = append(out, models.FromStation(s))
	}
	return out
}

func (rs *RouteService) Station(id string) (models.StationDetail, error) {
	s := rs.finder.StationByID(id)
	if s == nil {
		return models.StationDetail{}, stationNotFound("route.station", id)
	}
	return models.StationDetail{
		Station:    models.FromStation(s),
		Neighbours: models.FromNeighbours(rs.finder.Graph(), rs.finder.TubeMap(), id),
	}, nil
}

func (rs *RouteService) Lines() []models.Line {
	list := rs.finder.TubeMap().LineList()
	out := make([]models.Line, 0, len(list))
	for _, l := range list {
		out = append(out, models.FromLine(l))
	}
	return out
}
