package data

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"sales-forecast/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRecordsCSV(t *testing.T) {
	in := "\ufeffdata,venda,estoque,preco,loja\n" +
		"2023-01-05,100,40,9.90,A\n" +
		"\n" +
		"2023-01-20,50.25,,9.95,B\n" +
		"2023-02-10,200,35,NaN,A\n"

	recs, err := LoadRecordsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), recs[0].Date)
	assert.Equal(t, "100", recs[0].SaleAmount.String())
	assert.True(t, recs[0].StockLevel.Valid)
	assert.Equal(t, "9.9", recs[0].Price.Decimal.String())

	assert.Equal(t, 2, recs[1].Row)
	assert.Equal(t, "50.25", recs[1].SaleAmount.String())
	assert.False(t, recs[1].StockLevel.Valid)
	assert.False(t, recs[2].Price.Valid)
}

func TestLoadRecordsCSVHeaderIsCaseInsensitive(t *testing.T) {
	in := " Data , VENDA ,Estoque,Preco\n2023-03-01,1,2,3\n"
	recs, err := LoadRecordsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestLoadRecordsCSVErrors(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		row    int
		column string
	}{
		{"missing column", "data,venda,estoque\n2023-01-01,1,2\n", 0, ColPrice},
		{"bad date", "data,venda,estoque,preco\n2023-01-01,1,2,3\nnot-a-date,5,1,1\n", 2, ColDate},
		{"empty date", "data,venda,estoque,preco\n,5,1,1\n", 1, ColDate},
		{"bad sale", "data,venda,estoque,preco\n2023-01-01,abc,2,3\n", 1, ColSale},
		{"negative sale", "data,venda,estoque,preco\n2023-01-01,-4,2,3\n", 1, ColSale},
		{"bad stock", "data,venda,estoque,preco\n2023-01-01,4,lots,3\n", 1, ColStock},
		{"short row", "data,venda,estoque,preco\n2023-01-01\n", 1, ColSale},
		{"empty file", "", 0, ColDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadRecordsCSV(strings.NewReader(tc.in))
			require.Error(t, err)
			var de *model.DataFormatError
			require.True(t, errors.As(err, &de), "want DataFormatError, got %T", err)
			assert.Equal(t, tc.row, de.Row)
			assert.Equal(t, tc.column, de.Column)
		})
	}
}

func TestParseDate(t *testing.T) {
	jan5 := time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"2023-01-05":          jan5,
		"2023-1-5":            jan5,
		"2023/01/05":          jan5,
		"01/05/2023":          jan5,
		"25/01/2023":          time.Date(2023, time.January, 25, 0, 0, 0, 0, time.UTC),
		"05.01.2023":          jan5,
		"05-Jan-2023":         jan5,
		"Jan 5, 2023":         jan5,
		"2023-01-05 13:45:00": time.Date(2023, time.January, 5, 13, 45, 0, 0, time.UTC),
		"2023-01":             time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseDate(in)
		if assert.NoError(t, err, in) {
			assert.True(t, want.Equal(got), "%s: got %s", in, got)
		}
	}

	_, err := ParseDate("not-a-date")
	assert.Error(t, err)
	_, err = ParseDate("  ")
	assert.Error(t, err)
}

func TestLoadRecordsJSON(t *testing.T) {
	in := `[{"data":"2023-01-05","venda":100,"estoque":3,"preco":"9.5"},{"data":"2023-02-01","venda":"20.10"}]`
	recs, err := LoadRecordsJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "20.1", recs[1].SaleAmount.String())
	assert.False(t, recs[1].Price.Valid)

	_, err = LoadRecordsJSON(strings.NewReader(`[{"data":"nope","venda":1}]`))
	assert.True(t, model.IsDataFormat(err))

	_, err = LoadRecordsJSON(strings.NewReader(`{`))
	assert.True(t, model.IsDataFormat(err))
}

func TestWriteRecordsCSVRoundTrip(t *testing.T) {
	in := "data,venda,estoque,preco\n2023-01-05,100,40,9.9\n2023-01-20,50.25,,9.95\n"
	recs, err := LoadRecordsCSV(strings.NewReader(in))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteRecordsCSV(&buf, recs))
	assert.Equal(t, in, buf.String())
}
