// Package replay feeds a recorded encoder log through a tracker.
//
// A log is CSV with one row per reading: time in seconds, then the left and
// right cumulative tick counts. A leading header row is skipped.
package replay

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/odosim/internal/storage"
	"github.com/san-kum/odosim/internal/tracking"
)

var ErrMalformedLog = errors.New("replay: malformed encoder log")

type Sample struct {
	Time  float64
	Left  int
	Right int
}

func ReadLog(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var samples []Sample
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
		}
		line++

		if len(record) < 3 {
			return nil, fmt.Errorf("%w: row %d has %d fields, want 3", ErrMalformedLog, line, len(record))
		}

		t, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("%w: row %d time %q", ErrMalformedLog, line, record[0])
		}
		left, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d left ticks %q", ErrMalformedLog, line, record[1])
		}
		right, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d right ticks %q", ErrMalformedLog, line, record[2])
		}

		samples = append(samples, Sample{Time: t, Left: left, Right: right})
	}

	return samples, nil
}

// Run updates tr with each sample in order. An unseeded tracker takes its
// previous counts from the first sample.
func Run(tr *tracking.Tracker, samples []Sample) []tracking.Estimate {
	out := make([]tracking.Estimate, 0, len(samples))
	for _, s := range samples {
		pose := tr.Update(s.Left, s.Right)
		out = append(out, tracking.Estimate{Time: s.Time, LeftTicks: s.Left, RightTicks: s.Right, Pose: pose})
	}
	return out
}

var Columns = []string{"time", "ticks_l", "ticks_r", "est_x", "est_y", "est_theta"}

func Table(estimates []tracking.Estimate) storage.Table {
	rows := make([][]float64, len(estimates))
	for i, e := range estimates {
		rows[i] = []float64{e.Time, float64(e.LeftTicks), float64(e.RightTicks), e.Pose.X, e.Pose.Y, e.Pose.Theta}
	}
	return storage.Table{Columns: Columns, Rows: rows}
}
