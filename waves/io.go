package waves

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gojabber/types"
)

// The wave list interchange format is one wave per line:
//
//	amplitude,frequency,phase,branch,dir_1[,dir_2[,dir_3]]
//
// where branch is S or F. Floats are written in shortest round trip form.

func WriteWaves(w io.Writer, ws []Wave) (err error) {
	var (
		cw  = csv.NewWriter(w)
		rec []string
	)
	for _, wv := range ws {
		rec = rec[:0]
		rec = append(rec,
			formatFloat(wv.Amplitude),
			formatFloat(wv.Frequency),
			formatFloat(wv.Phase),
			string(wv.Branch.Char()),
		)
		for _, d := range wv.Direction {
			rec = append(rec, formatFloat(d))
		}
		if err = cw.Write(rec); err != nil {
			return
		}
	}
	cw.Flush()
	err = cw.Error()
	return
}

func ReadWaves(r io.Reader) (ws []Wave, err error) {
	var (
		cr   = csv.NewReader(r)
		rec  []string
		line int
	)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	for {
		if rec, err = cr.Read(); err == io.EOF {
			err = nil
			return
		} else if err != nil {
			return
		}
		line++
		var wv Wave
		if wv, err = parseWave(rec); err != nil {
			err = fmt.Errorf("wave record %d: %w", line, err)
			return
		}
		ws = append(ws, wv)
	}
}

func parseWave(rec []string) (wv Wave, err error) {
	if len(rec) < 5 {
		err = fmt.Errorf("need at least 5 fields, have %d", len(rec))
		return
	}
	var (
		scalars = []*float64{&wv.Amplitude, &wv.Frequency, &wv.Phase}
	)
	for i, p := range scalars {
		if *p, err = parseFloat(rec[i]); err != nil {
			return
		}
	}
	if wv.Branch, err = types.NewBranch(rec[3]); err != nil {
		return
	}
	wv.Direction = make([]float64, len(rec)-4)
	for d := range wv.Direction {
		if wv.Direction[d], err = parseFloat(rec[4+d]); err != nil {
			return
		}
	}
	return
}

func ReadWavesFile(path string) (ws []Wave, err error) {
	var (
		f *os.File
	)
	if f, err = os.Open(path); err != nil {
		err = fmt.Errorf("unable to open wave file: %w", err)
		return
	}
	defer f.Close()
	if ws, err = ReadWaves(f); err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}
	return
}

func WriteWavesFile(path string, ws []Wave) (err error) {
	var (
		f *os.File
	)
	if f, err = os.Create(path); err != nil {
		return
	}
	if err = WriteWaves(f, ws); err != nil {
		f.Close()
		return
	}
	err = f.Close()
	return
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
