package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/iafilius/OverdoseTrends/src/applog"
)

// Load reads the table at path and reshapes it. Files ending in .xlsx are read
// from their first sheet; anything else is treated as comma-separated text.
func Load(path string) (*Dataset, error) {
	defer applog.TimeTrack(time.Now(), "load "+path)
	var (
		t   *RawTable
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		t, err = readWorkbook(path)
	} else {
		t, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	ds := t.Reshape()
	applog.Debugf("loaded %s: %d years, %d substances", path, len(ds.Years), len(ds.Substances))
	return ds, nil
}

func readCSV(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTable(f)
}

func readWorkbook(path string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return parseRecords(rows)
}
