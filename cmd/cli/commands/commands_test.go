package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSales(t *testing.T, months int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("data,venda,estoque,preco\n")
	for m := 0; m < months; m++ {
		year := 2023 + m/12
		month := m%12 + 1
		fmt.Fprintf(&b, "%d-%02d-05,%d,10,2.50\n", year, month, 100+10*m)
		fmt.Fprintf(&b, "%d-%02d-20,50,,\n", year, month)
	}
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	cfgPath, dataPath, cfg = "", "", nil
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func TestForecastCommandWritesTail(t *testing.T) {
	data := writeSales(t, 12)
	out := filepath.Join(t.TempDir(), "out", "forecast.csv")
	xlsx := filepath.Join(t.TempDir(), "forecast.xlsx")

	require.NoError(t, execute(t, "forecast", "--data", data, "--horizon", "3", "--out", out, "--xlsx", xlsx))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ds,yhat,yhat_lower,yhat_upper", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-01,"))
	assert.True(t, strings.HasPrefix(lines[3], "2024-03-01,"))

	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestForecastCommandErrors(t *testing.T) {
	assert.ErrorContains(t, execute(t, "forecast"), "--data is required")

	data := writeSales(t, 1)
	err := execute(t, "forecast", "--data", data, "--out", filepath.Join(t.TempDir(), "f.csv"))
	assert.ErrorContains(t, err, "insufficient")

	data = writeSales(t, 6)
	err = execute(t, "forecast", "--data", data, "--horizon", "30", "--out", filepath.Join(t.TempDir(), "f.csv"))
	assert.ErrorContains(t, err, "invalid forecast horizon")
}

func TestTopAndChartsCommands(t *testing.T) {
	data := writeSales(t, 4)
	require.NoError(t, execute(t, "top", "--data", data, "-n", "2"))

	dir := filepath.Join(t.TempDir(), "charts")
	require.NoError(t, execute(t, "charts", "--data", data, "--horizon", "2", "--dir", dir))
	for _, name := range []string{"forecast.png", "components.png", "price-stock.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size())
	}
}
