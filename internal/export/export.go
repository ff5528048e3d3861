package export

import (
	"time"

	"sales-forecast/internal/model"
)

// Row is one line of the forecast table offered for download.
type Row struct {
	Date      time.Time `json:"ds"`
	YHat      float64   `json:"yhat"`
	YHatLower float64   `json:"yhat_lower"`
	YHatUpper float64   `json:"yhat_upper"`
}

// Tail returns the last k points of the result in chronological order.
// k beyond the number of points returns all of them; k <= 0 returns none.
func Tail(res *model.ForecastResult, k int) []Row {
	if res == nil || k <= 0 {
		return []Row{}
	}
	pts := res.Points
	if k < len(pts) {
		pts = pts[len(pts)-k:]
	}
	out := make([]Row, len(pts))
	for i, p := range pts {
		out[i] = Row{
			Date:      p.Date,
			YHat:      p.YHat,
			YHatLower: p.YHatLower,
			YHatUpper: p.YHatUpper,
		}
	}
	return out
}
