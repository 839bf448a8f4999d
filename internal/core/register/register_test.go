package register

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
)

const companiesHouseCSV = `CompanyName, CompanyNumber,CompanyStatus,RegAddress.PostTown,RegAddress.Country,PreviousName_1.CompanyName,PreviousName_2.CompanyName
"XYZ MANAGEMENT LIMITED", 01234567,Active,LONDON,UNITED KINGDOM,OLD XYZ LIMITED,OLD XYZ LIMITED
"!AN IDEAL LIFE???"" CIC",SC123456,Dissolved,EDINBURGH,SCOTLAND,,
ALPHA   BETA LTD,09999999,Active - Proposal to Strike off,PARIS,FRANCE,GAMMA LTD,
,,,,,,
`

func TestReadCSVCompaniesHouseLayout(t *testing.T) {
	companies, err := ReadCSV(strings.NewReader(companiesHouseCSV))
	require.NoError(t, err)
	require.Len(t, companies, 3)

	first := companies[0]
	require.Equal(t, "01234567", first.Number)
	require.Equal(t, "XYZ MANAGEMENT LIMITED", first.Name)
	require.Equal(t, "Active", first.Status)
	require.Equal(t, "LONDON", first.PostTown)
	require.Equal(t, "UNITED KINGDOM", first.Country)
	require.Equal(t, []string{"OLD XYZ LIMITED"}, first.PreviousNames)

	require.Equal(t, `!AN IDEAL LIFE???" CIC`, companies[1].Name)
	require.Empty(t, companies[1].PreviousNames)

	require.Equal(t, "ALPHA BETA LTD", companies[2].Name)
	require.Equal(t, []string{"GAMMA LTD"}, companies[2].PreviousNames)
}

func TestReadCSVSimpleHeaders(t *testing.T) {
	input := "company_number,company_name,post_town,country\n1,Acme Trading Ltd,Leeds,UK\n,Nameless Number Ltd,,\n"
	companies, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, companies, 2)
	require.Equal(t, "Leeds", companies[0].PostTown)
	require.Equal(t, "row-3", companies[1].Number)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)

	_, err = ReadCSV(strings.NewReader("company_number,status\n1,Active\n"))
	require.ErrorContains(t, err, "company name column")
}

func TestActiveOnly(t *testing.T) {
	companies, err := ReadCSV(strings.NewReader(companiesHouseCSV))
	require.NoError(t, err)

	active := ActiveOnly(companies)
	require.Len(t, active, 2)
	require.Equal(t, "01234567", active[0].Number)
	require.Equal(t, "09999999", active[1].Number)
}

func TestReadJSONL(t *testing.T) {
	input := strings.Join([]string{
		`{"company_number":"12345","company_name":"Test Company Ltd","address":{"post_town":"London","country":"UK"}}`,
		``,
		`{"company_name":"Flat Record Ltd","post_town":"Bath","previous_names":["Old Flat Ltd"]}`,
	}, "\n")

	companies, err := ReadJSONL(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, companies, 2)
	require.Equal(t, "London", companies[0].PostTown)
	require.Equal(t, "UK", companies[0].Country)
	require.Equal(t, "line-3", companies[1].Number)
	require.Equal(t, "Bath", companies[1].PostTown)
	require.Equal(t, []string{"Old Flat Ltd"}, companies[1].PreviousNames)

	_, err = ReadJSONL(strings.NewReader("{not json}\n"))
	require.ErrorContains(t, err, "line 1")
}

func TestReadText(t *testing.T) {
	companies, err := ReadText(strings.NewReader("# header\nAcme Ltd\n\n  Beta Holdings PLC  \n"))
	require.NoError(t, err)
	require.Equal(t, []core.Company{
		{Number: "line-2", Name: "Acme Ltd"},
		{Number: "line-4", Name: "Beta Holdings PLC"},
	}, companies)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"CompanyNumber", "CompanyName", "CompanyStatus", "RegAddress.PostTown"},
		{"01234567", "CITY ASSET MANAGEMENT PLC", "Active", "MANCHESTER"},
		{"07654321", "Beta Ltd", "Liquidation", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "register.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	companies, err := ReadFile(path, FormatAuto)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	require.Equal(t, "CITY ASSET MANAGEMENT PLC", companies[0].Name)
	require.Equal(t, "MANCHESTER", companies[0].PostTown)
	require.False(t, companies[1].IsActive())
}

func TestReadFileDetectsFormat(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "companies.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("company_number,company_name\n1,Acme Ltd\n"), 0o600))
	textPath := filepath.Join(dir, "names.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("Acme Ltd\n"), 0o600))

	companies, err := ReadFile(csvPath, FormatAuto)
	require.NoError(t, err)
	require.Equal(t, "1", companies[0].Number)

	companies, err = ReadFile(textPath, FormatAuto)
	require.NoError(t, err)
	require.Equal(t, "line-1", companies[0].Number)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"), FormatCSV)
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "CSV": FormatCSV, "excel": FormatXLSX, "ndjson": FormatJSONL, "txt": FormatText} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseFormat("parquet")
	require.Error(t, err)

	require.Equal(t, FormatJSONL, DetectFormat("a.NDJSON"))
	require.Equal(t, FormatText, DetectFormat("names"))
}
