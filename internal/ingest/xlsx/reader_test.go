package xlsx

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lavadash/internal/parser"
	"lavadash/pkg/contracts/domain"
)

// buildWorkbook writes rows into a single-sheet workbook file.
func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheet)
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	path := filepath.Join(t.TempDir(), "relatorio.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestFlattenProducesParsableText(t *testing.T) {
	path := buildWorkbook(t, "Vendas", [][]interface{}{
		{"Produtos", "Qtd", "Vlr", "Desc", "Forma Pagamento", "Op", "Maquina", "Serie", "Cupom", "Total Venda", "Data", "Hora"},
		{"1", "", "", "", "Pix", "", "Lavadora 2", "", "", "30,00", "01/03/2024", "10:00:00"},
	})

	text, err := Flatten(path)
	require.NoError(t, err)

	result := parser.New(slog.Default(), parser.DefaultConfig()).Parse(text)
	assert.Equal(t, domain.ReportTypeSelfService, result.Metadata.ReportType)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "Lavadora 2", result.Transactions[0].Machine)
	assert.InDelta(t, 30.0, result.Transactions[0].Amount, 1e-9)
}

func TestFlattenQuotesCellsWithCommas(t *testing.T) {
	path := buildWorkbook(t, "Plan1", [][]interface{}{
		{"Data", "valor com, virgula"},
	})

	text, err := Flatten(path)
	require.NoError(t, err)
	assert.Equal(t, "Data,\"valor com, virgula\"\n", text)
}

func TestFlattenMissingFile(t *testing.T) {
	_, err := Flatten(filepath.Join(t.TempDir(), "nao-existe.xlsx"))
	assert.Error(t, err)
}

func TestFlattenBytesRoundTrip(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Data"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Hora"))

	var buf strings.Builder
	require.NoError(t, f.Write(&buf))

	text, err := FlattenBytes([]byte(buf.String()))
	require.NoError(t, err)
	assert.Contains(t, text, "Data,Hora")
}
