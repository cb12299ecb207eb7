package registry

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// SheetsStore reads and appends patient rows via the Google Sheets API.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsStore creates a registry store backed by one sheet of a
// spreadsheet.
func NewSheetsStore(svc *sheets.Service, spreadsheetID, sheetName string) *SheetsStore {
	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
}

// ListAll fetches the whole sheet and maps each data row against the
// header row.
func (s *SheetsStore) ListAll(ctx context.Context) ([]Record, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list registry rows: %w", err)
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}

	headers := toStrings(resp.Values[0])
	records := make([]Record, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		cells := toStrings(row)
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				rec[h] = cells[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Append writes one row using the header row as the schema.
func (s *SheetsStore) Append(ctx context.Context, rec Record) error {
	headers, err := s.headers(ctx)
	if err != nil {
		return err
	}

	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = rec[h]
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetName, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append registry row: %w", err)
	}
	return nil
}

func (s *SheetsStore) headers(ctx context.Context) ([]string, error) {
	rangeRef := fmt.Sprintf("%s!1:1", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rangeRef).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read registry headers: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("registry sheet %s has no header row", s.sheetName)
	}
	return toStrings(resp.Values[0]), nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = fmt.Sprint(v)
	}
	return out
}
