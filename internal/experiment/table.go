package experiment

import (
	"github.com/san-kum/odosim/internal/models"
	"github.com/san-kum/odosim/internal/storage"
)

var Columns = []string{
	"time", "x", "y", "theta", "phi_l", "phi_r",
	"ticks_l", "ticks_r", "est_x", "est_y", "est_theta",
}

// Table flattens ground truth and estimates into one row per instant.
func (r *Result) Table() storage.Table {
	n := len(r.States)
	if len(r.Estimates) < n {
		n = len(r.Estimates)
	}

	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		x := r.States[i]
		est := r.Estimates[i]
		rows[i] = []float64{
			r.Times[i],
			x[models.IdxX], x[models.IdxY], x[models.IdxTheta],
			x[models.IdxPhiL], x[models.IdxPhiR],
			float64(est.LeftTicks), float64(est.RightTicks),
			est.Pose.X, est.Pose.Y, est.Pose.Theta,
		}
	}
	return storage.Table{Columns: Columns, Rows: rows}
}
