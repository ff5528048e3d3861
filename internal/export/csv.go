package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{"ds", "yhat", "yhat_lower", "yhat_upper"}

// EncodeCSV renders rows as forecast.csv bytes.
func EncodeCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteCSVFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeCSV(f, rows)
}

func writeCSV(out io.Writer, rows []Row) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			fmtDate(r.Date),
			fmtFloat(r.YHat),
			fmtFloat(r.YHatLower),
			fmtFloat(r.YHatUpper),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
