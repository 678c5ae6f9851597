package survey

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoOrders is returned when a survey is asked for a negative top order.
var ErrNoOrders = errors.New("survey needs at least order 0")

// OrderStats summarizes the geometry of one built order.
type OrderStats struct {
	Order     int
	Vertices  int
	Triangles int

	// Edge lengths over every triangle edge. Each shared edge is seen twice, which
	// leaves the mean unchanged.
	EdgeMin, EdgeMax, EdgeMean float64

	// Flat triangle areas and their sum, which approaches 4π from below.
	AreaMin, AreaMax, TotalArea float64

	// RadiusDeviation is the largest |‖v‖ - 1| over all vertices.
	RadiusDeviation float64

	BuildTime time.Duration
}

// EdgeRatio returns EdgeMax / EdgeMin, a measure of how uneven the tessellation is.
//
// Returns:
//   - float64: the ratio, or 0 for an empty mesh
func (s OrderStats) EdgeRatio() float64 {
	if s.EdgeMin == 0 {
		return 0
	}
	return s.EdgeMax / s.EdgeMin
}

// Measure computes the statistics of a built mesh.
//
// Parameters:
//   - mesh: the mesh to measure
//
// Returns:
//   - OrderStats: the statistics, with BuildTime left zero
func Measure(mesh sphere.Mesh) OrderStats {
	verts := mesh.Vertices()
	inds := mesh.Indices()

	s := OrderStats{
		Order:     mesh.Order(),
		Vertices:  mesh.VertexCount(),
		Triangles: mesh.TriangleCount(),
		EdgeMin:   math.Inf(1),
		AreaMin:   math.Inf(1),
	}

	at := func(i uint32) r3.Vec {
		return r3.Vec{X: float64(verts[3*i]), Y: float64(verts[3*i+1]), Z: float64(verts[3*i+2])}
	}

	for v := 0; v < len(verts)/3; v++ {
		s.RadiusDeviation = max(s.RadiusDeviation, math.Abs(r3.Norm(at(uint32(v)))-1))
	}

	var edgeSum float64
	edges := 0
	for t := 0; t+2 < len(inds); t += 3 {
		a, b, c := at(inds[t]), at(inds[t+1]), at(inds[t+2])
		for _, e := range [3]float64{r3.Norm(r3.Sub(b, a)), r3.Norm(r3.Sub(c, b)), r3.Norm(r3.Sub(a, c))} {
			s.EdgeMin = min(s.EdgeMin, e)
			s.EdgeMax = max(s.EdgeMax, e)
			edgeSum += e
			edges++
		}
		area := r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))) / 2
		s.AreaMin = min(s.AreaMin, area)
		s.AreaMax = max(s.AreaMax, area)
		s.TotalArea += area
	}

	if edges == 0 {
		s.EdgeMin, s.AreaMin = 0, 0
		return s
	}
	s.EdgeMean = edgeSum / float64(edges)
	return s
}

// surveyor is the implementation of the Surveyor interface.
type surveyor struct {
	workers int
	build   func(order int) (sphere.Mesh, error)
	logging bool
}

// Surveyor builds a range of orders in parallel and measures each one.
type Surveyor interface {
	// Run builds orders 0 through maxOrder on the worker pool and measures them.
	//
	// Parameters:
	//   - maxOrder: the last order to build
	//
	// Returns:
	//   - []OrderStats: one entry per order, ascending
	//   - error: the first build error by order, or ErrNoOrders
	Run(maxOrder int) ([]OrderStats, error)

	// Workers returns the size of the worker pool.
	Workers() int
}

var _ Surveyor = &surveyor{}

// NewSurveyor creates a Surveyor with the provided options.
// By default it uses four workers and sphere.Build.
//
// Parameters:
//   - options: a variadic list of SurveyorBuilderOption functions
//
// Returns:
//   - Surveyor: the configured surveyor
func NewSurveyor(options ...SurveyorBuilderOption) Surveyor {
	s := &surveyor{
		workers: 4,
		build:   sphere.Build,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *surveyor) Workers() int {
	return s.workers
}

func (s *surveyor) Run(maxOrder int) ([]OrderStats, error) {
	if maxOrder < 0 {
		return nil, ErrNoOrders
	}

	pool := worker.NewDynamicWorkerPool(s.workers, 256, time.Second)

	results := make([]OrderStats, maxOrder+1)
	errs := make([]error, maxOrder+1)

	// The pool has no per-batch barrier, so a WaitGroup tracks this run's tasks.
	var wg sync.WaitGroup
	for order := maxOrder; order >= 0; order-- {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: order,
			Do: func() (any, error) {
				defer wg.Done()
				start := time.Now()
				mesh, err := s.build(order)
				if err != nil {
					errs[order] = fmt.Errorf("order %d: %w", order, err)
					return nil, errs[order]
				}
				st := Measure(mesh)
				st.BuildTime = time.Since(start)
				results[order] = st
				if s.logging {
					log.Printf("[Survey] order %d: %d vertices, %d triangles in %s", order, st.Vertices, st.Triangles, st.BuildTime)
				}
				return st, nil
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// WriteTable prints stats as an aligned text table.
//
// Parameters:
//   - w: the destination
//   - stats: the rows, usually from Surveyor.Run
//
// Returns:
//   - error: the first write error
func WriteTable(w io.Writer, stats []OrderStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "order\tvertices\ttriangles\tedge min\tedge max\tedge mean\tratio\tarea min\tarea max\tarea sum\tradius dev\tbuild\t")
	for _, s := range stats {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.6f\t%.6f\t%.6f\t%.4f\t%.3e\t%.3e\t%.6f\t%.1e\t%s\t\n",
			s.Order, s.Vertices, s.Triangles,
			s.EdgeMin, s.EdgeMax, s.EdgeMean, s.EdgeRatio(),
			s.AreaMin, s.AreaMax, s.TotalArea,
			s.RadiusDeviation, s.BuildTime.Round(time.Microsecond))
	}
	return tw.Flush()
}
