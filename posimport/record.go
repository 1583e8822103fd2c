// Package posimport turns POS terminal exports into import batches for the
// server's matching pipeline. It reads xlsx, legacy xls and csv exports,
// groups lines per register and business day, and uploads them in chunks.
package posimport

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/carlsburger/gastrocore/utils"
)

// Record is one POS ticket line.
type Record struct {
	TicketNo    string
	Register    string
	BusinessDay time.Time
	BookedAt    time.Time
	GrossCents  int64
	NetCents    int64
	PaymentKind string
}

// Key identifies a line for dedup: one ticket per register per business day.
func (r Record) Key() string {
	return r.TicketNo + "|" + r.Register + "|" + r.BusinessDay.Format("2006-01-02")
}

var headerAliases = map[string][]string{
	"ticket":   {"ticket", "ticket no", "beleg", "belegnr", "beleg-nr", "bon", "bonnummer"},
	"register": {"register", "kasse", "terminal"},
	"day":      {"business day", "date", "datum", "tag"},
	"booked":   {"booked at", "time", "zeit", "uhrzeit"},
	"gross":    {"gross", "brutto", "summe brutto"},
	"net":      {"net", "netto", "summe netto"},
	"payment":  {"payment", "zahlart", "zahlungsart"},
}

// ParseWorkbook reads POS export lines from an xlsx, xls or csv export.
// The format is picked from the filename extension. Rows with an empty
// ticket cell are footer/summary lines and are skipped.
func ParseWorkbook(reader io.Reader, filename string) ([]Record, error) {
	rows, err := readRows(reader, filename)
	if err != nil {
		return nil, err
	}
	return recordsFromRows(rows)
}

func readRows(reader io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, err
		}
		if workbook.NumSheets() == 0 {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows := workbook.ReadAllCells(100000)
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	case ".csv":
		// German terminals export semicolon-separated files
		firstLine, _, _ := strings.Cut(string(data), "\n")
		if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
			return utils.ParseDelimitedCSV(bytes.NewReader(data), ';')
		}
		return utils.ParseCSV(bytes.NewReader(data))
	default:
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("no worksheet found")
		}

		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	}
}

func recordsFromRows(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("export has no rows")
	}

	headerIndex := map[string]int{}
	for i, header := range rows[0] {
		headerIndex[normalizeHeader(header)] = i
	}

	ticketIdx := findColumn(headerIndex, headerAliases["ticket"])
	registerIdx := findColumn(headerIndex, headerAliases["register"])
	dayIdx := findColumn(headerIndex, headerAliases["day"])
	if ticketIdx == -1 || registerIdx == -1 || dayIdx == -1 {
		return nil, fmt.Errorf("missing required columns: ticket, register, business day")
	}

	bookedIdx := findColumn(headerIndex, headerAliases["booked"])
	grossIdx := findColumn(headerIndex, headerAliases["gross"])
	netIdx := findColumn(headerIndex, headerAliases["net"])
	paymentIdx := findColumn(headerIndex, headerAliases["payment"])

	var records []Record
	for i, row := range rows[1:] {
		ticket := strings.TrimSpace(cellValue(row, ticketIdx))
		if ticket == "" {
			continue
		}

		day, err := parseBusinessDay(cellValue(row, dayIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		record := Record{
			TicketNo:    ticket,
			Register:    strings.TrimSpace(cellValue(row, registerIdx)),
			BusinessDay: day,
			PaymentKind: strings.TrimSpace(cellValue(row, paymentIdx)),
		}

		if grossIdx >= 0 {
			record.GrossCents, err = parseCents(cellValue(row, grossIdx))
			if err != nil {
				return nil, fmt.Errorf("row %d: gross: %w", i+2, err)
			}
		}
		if netIdx >= 0 {
			record.NetCents, err = parseCents(cellValue(row, netIdx))
			if err != nil {
				return nil, fmt.Errorf("row %d: net: %w", i+2, err)
			}
		}
		if bookedIdx >= 0 {
			if bookedAt, err := parseBookedAt(day, cellValue(row, bookedIdx)); err == nil {
				record.BookedAt = bookedAt
			}
		}

		records = append(records, record)
	}

	return records, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func findColumn(headerIndex map[string]int, aliases []string) int {
	for _, alias := range aliases {
		if idx, ok := headerIndex[alias]; ok {
			return idx
		}
	}
	return -1
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseBusinessDay(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty business day")
	}

	// Excel numeric date serial (common in XLS/XLSX exports).
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial >= 20000 && serial <= 80000 {
			if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return parsed, nil
			}
		}
	}

	layouts := []string{
		"2006-01-02",
		"02.01.2006",
		"2.1.2006",
		"01/02/2006",
		"1/2/06",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized business day %q", value)
}

func parseCents(value string) (int64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	value = strings.Trim(value, "€")
	if value == "" {
		return 0, nil
	}

	// German exports use a decimal comma and optional thousands dots.
	if comma := strings.LastIndexByte(value, ','); comma >= 0 {
		if dot := strings.LastIndexByte(value, '.'); dot < comma {
			value = strings.ReplaceAll(value, ".", "")
			value = strings.Replace(value, ",", ".", 1)
		} else {
			value = strings.ReplaceAll(value, ",", "")
		}
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized amount %q", value)
	}
	return int64(math.Round(f * 100)), nil
}

func parseBookedAt(day time.Time, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty booked-at")
	}

	if t, err := utils.ParseISOTime(value); err == nil {
		return *t, nil
	}
	return utils.ParseClockOnDate(day, value)
}
