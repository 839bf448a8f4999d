package register

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
)

// ReadCSV reads a headed CSV. Leading spaces after delimiters are ignored, as
// in the Companies House bulk files (" CompanyNumber").
func ReadCSV(r io.Reader) ([]core.Company, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("register file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read register header: %w", err)
	}
	cols, err := newColumns(header)
	if err != nil {
		return nil, err
	}

	companies := make([]core.Company, 0)
	rowNum := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			return nil, fmt.Errorf("read register row %d: %w", rowNum, err)
		}
		if company, ok := cols.company(row, rowNum); ok {
			companies = append(companies, company)
		}
	}
	return companies, nil
}

// ReadXLSX reads the first sheet of a workbook with the same header mapping as ReadCSV.
func ReadXLSX(path string) ([]core.Company, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close() // nolint:errcheck // best-effort cleanup on read-only workbook

	return readWorkbook(f)
}

// ReadXLSXReader reads a workbook from r.
func ReadXLSXReader(r io.Reader) ([]core.Company, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close() // nolint:errcheck // best-effort cleanup on read-only workbook

	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]core.Company, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.New("register file is empty")
	}

	cols, err := newColumns(rows[0])
	if err != nil {
		return nil, err
	}
	companies := make([]core.Company, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if company, ok := cols.company(row, i+2); ok {
			companies = append(companies, company)
		}
	}
	return companies, nil
}

type jsonRecord struct {
	CompanyNumber string `json:"company_number"`
	CompanyName   string `json:"company_name"`
	CompanyStatus string `json:"company_status"`
	PostTown      string `json:"post_town"`
	Country       string `json:"country"`
	Address       *struct {
		PostTown string `json:"post_town"`
		Country  string `json:"country"`
	} `json:"address"`
	PreviousNames []string `json:"previous_names"`
}

// ReadJSONL reads one company record per line. Both the nested address form
// and flat post_town/country keys are accepted.
func ReadJSONL(r io.Reader) ([]core.Company, error) {
	companies := make([]core.Company, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var rec jsonRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("invalid record on line %d: %w", line, err)
		}
		company := core.Company{
			Number:        collapse(rec.CompanyNumber),
			Name:          rec.CompanyName,
			Status:        collapse(rec.CompanyStatus),
			PostTown:      collapse(rec.PostTown),
			Country:       collapse(rec.Country),
			PreviousNames: rec.PreviousNames,
		}
		if rec.Address != nil {
			company.PostTown = collapse(rec.Address.PostTown)
			company.Country = collapse(rec.Address.Country)
		}
		if company.Number == "" {
			company.Number = fmt.Sprintf("line-%d", line)
		}
		companies = append(companies, company)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return companies, nil
}

// ReadText reads one company name per line. Blank lines and '#' comments are
// skipped; numbers are synthesised as line-<n>.
func ReadText(r io.Reader) ([]core.Company, error) {
	companies := make([]core.Company, 0)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		companies = append(companies, core.Company{
			Number: fmt.Sprintf("line-%d", line),
			Name:   raw,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return companies, nil
}
