package storage

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// ExcelStore keeps tables as worksheets of a single .xlsx workbook, one
// sheet per sourceID. This is the local stand-in for a spreadsheet
// service: reads pull whole sheets, writes overwrite them.
type ExcelStore struct {
	path string
}

// scratchSheet parks the workbook while a sheet is rebuilt; a workbook
// cannot lose its last worksheet.
const scratchSheet = "__scratch__"

// NewExcelStore returns a store backed by the workbook at path. The file
// is created on the first write.
func NewExcelStore(path string) *ExcelStore {
	return &ExcelStore{path: path}
}

// FetchTable reads a whole sheet. A missing workbook or sheet is an empty
// table, not an error.
func (s *ExcelStore) FetchTable(sourceID string) ([]string, [][]string, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, nil, &StorageError{Op: "fetch", Source: sourceID, Err: err}
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sourceID)
	if err != nil {
		return nil, nil, &StorageError{Op: "fetch", Source: sourceID, Err: err}
	}
	if idx == -1 {
		return nil, nil, nil
	}

	rows, err := f.GetRows(sourceID)
	if err != nil {
		return nil, nil, &StorageError{Op: "fetch", Source: sourceID, Err: err}
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

// WriteTable overwrites a whole sheet. The old sheet is dropped and
// rebuilt so no stale rows or columns can survive a shrink.
func (s *ExcelStore) WriteTable(sourceID string, header []string, rows [][]string) error {
	wrap := func(err error) error {
		return &StorageError{Op: "write", Source: sourceID, Err: err}
	}

	var f *excelize.File
	created := false
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		f = excelize.NewFile()
		created = true
	} else {
		var openErr error
		if f, openErr = excelize.OpenFile(s.path); openErr != nil {
			return wrap(openErr)
		}
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sourceID)
	if err != nil {
		return wrap(err)
	}
	if idx != -1 {
		if len(f.GetSheetList()) == 1 {
			if _, err := f.NewSheet(scratchSheet); err != nil {
				return wrap(err)
			}
		}
		if err := f.DeleteSheet(sourceID); err != nil {
			return wrap(err)
		}
	}
	if idx, err = f.NewSheet(sourceID); err != nil {
		return wrap(err)
	}
	f.SetActiveSheet(idx)

	for _, leftover := range []string{scratchSheet, "Sheet1"} {
		if leftover == sourceID {
			continue
		}
		if leftover == "Sheet1" && !created {
			continue
		}
		if si, err := f.GetSheetIndex(leftover); err == nil && si != -1 {
			if err := f.DeleteSheet(leftover); err != nil {
				return wrap(err)
			}
		}
	}

	table := append([][]string{header}, rows...)
	for r, row := range table {
		cells := make([]interface{}, len(row))
		for c, value := range row {
			cells[c] = value
		}
		if err := f.SetSheetRow(sourceID, fmt.Sprintf("A%d", r+1), &cells); err != nil {
			return wrap(err)
		}
	}

	if created {
		err = f.SaveAs(s.path)
	} else {
		err = f.Save()
	}
	if err != nil {
		return wrap(err)
	}
	return nil
}
