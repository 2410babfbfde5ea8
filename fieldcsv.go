package flowfield

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gocarina/gocsv"
)

// csvSample is the CSV row layout for field point clouds: one sample per
// row with x,y,dx,dy,magnitude columns. The magnitude column is optional
// on load; zero or missing magnitudes are recomputed from dx,dy.
type csvSample struct {
	X         float64 `csv:"x"`
	Y         float64 `csv:"y"`
	DX        float64 `csv:"dx"`
	DY        float64 `csv:"dy"`
	Magnitude float64 `csv:"magnitude"`
}

// LoadFieldCSV reads a field point cloud from CSV.
func LoadFieldCSV(r io.Reader) (*Field, error) {
	var rows []csvSample
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("flowfield: parse field csv: %w", err)
	}
	n := len(rows)
	xs := make([]float64, n)
	ys := make([]float64, n)
	dxs := make([]float64, n)
	dys := make([]float64, n)
	mags := make([]float64, n)
	for i, row := range rows {
		xs[i] = row.X
		ys[i] = row.Y
		dxs[i] = row.DX
		dys[i] = row.DY
		if row.Magnitude != 0 {
			mags[i] = row.Magnitude
		} else {
			mags[i] = math.Hypot(row.DX, row.DY)
		}
	}
	return NewField(xs, ys, dxs, dys, mags)
}

// LoadFieldCSVFile reads a field point cloud from a CSV file.
func LoadFieldCSVFile(path string) (*Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("flowfield: open field csv: %w", err)
	}
	defer f.Close()
	return LoadFieldCSV(f)
}

// SaveFieldCSV writes the field's point cloud as CSV with a header row.
func SaveFieldCSV(w io.Writer, f *Field) error {
	rows := make([]csvSample, f.Len())
	for i := range rows {
		rows[i] = csvSample{
			X:         f.Xs[i],
			Y:         f.Ys[i],
			DX:        f.DXs[i],
			DY:        f.DYs[i],
			Magnitude: f.Magnitudes[i],
		}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("flowfield: write field csv: %w", err)
	}
	return nil
}
