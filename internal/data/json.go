package data

import (
	"encoding/json"
	"fmt"
	"io"

	"sales-forecast/internal/model"
)

// jsonRecord mirrors the CSV columns. Numbers may arrive as JSON numbers or strings.
type jsonRecord struct {
	Data    string      `json:"data"`
	Venda   json.Number `json:"venda"`
	Estoque json.Number `json:"estoque"`
	Preco   json.Number `json:"preco"`
}

// LoadRecordsJSON parses a JSON array of {"data","venda","estoque","preco"} objects
// with the same validation rules as LoadRecordsCSV.
func LoadRecordsJSON(r io.Reader) ([]model.RawRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rows []jsonRecord
	if err := dec.Decode(&rows); err != nil {
		return nil, &model.DataFormatError{Reason: fmt.Sprintf("invalid JSON body: %v", err)}
	}
	out := make([]model.RawRecord, 0, len(rows))
	for i, jr := range rows {
		rec, err := parseRow(i+1, jr.Data, jr.Venda.String(), jr.Estoque.String(), jr.Preco.String())
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
