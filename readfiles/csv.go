package readfiles

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
)

type XY struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
}

// ReadXY reads two column x,y data without a header, sorted by x on return
func ReadXY(r io.Reader) (x, y []float64, err error) {
	var (
		rows []XY
	)
	if err = gocsv.UnmarshalWithoutHeaders(r, &rows); err != nil {
		err = fmt.Errorf("reading xy data: %w", err)
		return
	}
	if len(rows) == 0 {
		err = fmt.Errorf("reading xy data: no rows")
		return
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].X < rows[j].X })
	x, y = make([]float64, len(rows)), make([]float64, len(rows))
	for i, row := range rows {
		x[i], y[i] = row.X, row.Y
	}
	return
}

func ReadXYFile(path string) (x, y []float64, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(path); err != nil {
		err = fmt.Errorf("unable to open xy file: %w", err)
		return
	}
	defer file.Close()
	if x, y, err = ReadXY(file); err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}
	return
}

type Point struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
	Z float64 `csv:"z"`
}

// ReadPoints reads a point cloud with an x[,y[,z]] header. Coordinates are
// returned interleaved, point i at coords[i*dim : (i+1)*dim].
func ReadPoints(r io.Reader, dim int) (coords []float64, err error) {
	var (
		rows []Point
	)
	if dim < 1 || dim > 3 {
		err = fmt.Errorf("dimension must be 1, 2 or 3, have %d", dim)
		return
	}
	if err = gocsv.Unmarshal(r, &rows); err != nil {
		err = fmt.Errorf("reading points: %w", err)
		return
	}
	coords = make([]float64, 0, dim*len(rows))
	for _, p := range rows {
		coords = append(coords, []float64{p.X, p.Y, p.Z}[:dim]...)
	}
	return
}

func ReadPointsFile(path string, dim int) (coords []float64, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(path); err != nil {
		err = fmt.Errorf("unable to open points file: %w", err)
		return
	}
	defer file.Close()
	if coords, err = ReadPoints(file, dim); err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}
	return
}

// Snapshot is a computed field at a point cloud
type Snapshot interface {
	Dim() int
	NumPoints() int
	Coord(d int) []float64
	Density() []float64
	Momentum(d int) []float64
	Energy() []float64
}

// SnapshotRow is one point of a snapshot, components beyond the dimension are zero
type SnapshotRow struct {
	Step  int     `csv:"step"`
	T     float64 `csv:"t"`
	Index int     `csv:"i"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
	Rho   float64 `csv:"rho"`
	RhoU  float64 `csv:"rhoU"`
	RhoV  float64 `csv:"rhoV"`
	RhoW  float64 `csv:"rhoW"`
	RhoE  float64 `csv:"rhoE"`
}

func SnapshotRows(s Snapshot, step int, t float64) (rows []SnapshotRow) {
	var (
		N   = s.NumPoints()
		dim = s.Dim()
		rho = s.Density()
		e   = s.Energy()
	)
	rows = make([]SnapshotRow, N)
	for i := range rows {
		var x, m [3]float64
		for d := 0; d < dim; d++ {
			x[d], m[d] = s.Coord(d)[i], s.Momentum(d)[i]
		}
		rows[i] = SnapshotRow{step, t, i, x[0], x[1], x[2], rho[i], m[0], m[1], m[2], e[i]}
	}
	return
}

// WriteSnapshot appends the rows of a snapshot to w, with a leading header when header is set
func WriteSnapshot(w io.Writer, s Snapshot, step int, t float64, header bool) (err error) {
	var (
		rows = SnapshotRows(s, step, t)
	)
	if header {
		err = gocsv.Marshal(rows, w)
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, w)
	}
	if err != nil {
		err = fmt.Errorf("writing snapshot: %w", err)
	}
	return
}
