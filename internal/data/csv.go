package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"sales-forecast/internal/model"

	"github.com/shopspring/decimal"
)

// Column names of the upload format.
const (
	ColDate  = "data"
	ColSale  = "venda"
	ColStock = "estoque"
	ColPrice = "preco"
)

// RequiredColumns lists the header columns every upload must carry.
var RequiredColumns = []string{ColDate, ColSale, ColStock, ColPrice}

// LoadRecordsFile opens path and parses it with LoadRecordsCSV.
func LoadRecordsFile(path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadRecordsCSV(f)
}

// LoadRecordsCSV parses a sales CSV. Extra columns are ignored, blank lines
// are skipped, and any malformed required cell aborts the whole load with a
// *model.DataFormatError.
func LoadRecordsCSV(r io.Reader) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &model.DataFormatError{Column: ColDate, Reason: "file is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var out []model.RawRecord
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &model.DataFormatError{Row: row, Reason: pe.Err.Error()}
			}
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		if blankRow(rec) {
			row--
			continue
		}
		r, err := parseRow(row, cell(rec, idx[ColDate]), cell(rec, idx[ColSale]), cell(rec, idx[ColStock]), cell(rec, idx[ColPrice]))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func indexColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.ToLower(strings.TrimSpace(strings.Trim(h, "\"")))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &model.DataFormatError{Column: col, Reason: "required column missing"}
		}
	}
	return idx, nil
}

// parseRow validates one set of raw cells. Shared by the CSV and JSON loaders.
func parseRow(row int, date, sale, stock, price string) (model.RawRecord, error) {
	rec := model.RawRecord{Row: row}

	if date == "" {
		return rec, &model.DataFormatError{Row: row, Column: ColDate, Reason: "missing date"}
	}
	t, err := ParseDate(date)
	if err != nil {
		return rec, &model.DataFormatError{Row: row, Column: ColDate, Value: date, Reason: "unparseable date"}
	}
	rec.Date = t

	if sale == "" {
		return rec, &model.DataFormatError{Row: row, Column: ColSale, Reason: "missing sale amount"}
	}
	amt, err := decimal.NewFromString(sale)
	if err != nil {
		return rec, &model.DataFormatError{Row: row, Column: ColSale, Value: sale, Reason: "not a number"}
	}
	if amt.IsNegative() {
		return rec, &model.DataFormatError{Row: row, Column: ColSale, Value: sale, Reason: "sale amount must be non-negative"}
	}
	rec.SaleAmount = amt

	if rec.StockLevel, err = optionalDecimal(stock); err != nil {
		return rec, &model.DataFormatError{Row: row, Column: ColStock, Value: stock, Reason: "not a number"}
	}
	if rec.Price, err = optionalDecimal(price); err != nil {
		return rec, &model.DataFormatError{Row: row, Column: ColPrice, Value: price, Reason: "not a number"}
	}
	return rec, nil
}

func optionalDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "na") {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(rec[i], "\""))
}

func blankRow(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteRecordsCSV writes records back out in the upload format.
func WriteRecordsCSV(w io.Writer, records []model.RawRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RequiredColumns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Date.Format(time.DateOnly),
			r.SaleAmount.String(),
			fmtNull(r.StockLevel),
			fmtNull(r.Price),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
