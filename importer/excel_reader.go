// Package importer читает сырые записи реестра из Excel/CSV файлов
// и из внешнего API.
package importer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"promreestr/mapping"
)

// ReadExcelFile читает первый лист Excel-файла: первая строка — метки
// колонок, каждая последующая строка превращается в сырую запись.
// Пустые строки пропускаются, метки очищаются от BOM и пробелов.
func ReadExcelFile(filePath string) ([]mapping.RawRecord, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return rowsToRecords(rows)
}

// rowsToRecords превращает таблицу строк в сырые записи по заголовкам
func rowsToRecords(rows [][]string) ([]mapping.RawRecord, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("file is too short, expected at least header row and one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = cleanHeader(h)
	}

	var records []mapping.RawRecord
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		record := mapping.RawRecord{}
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			if strings.TrimSpace(cell) == "" {
				continue
			}
			record[headers[i]] = cell
		}
		if len(record) > 0 {
			records = append(records, record)
		}
	}

	return records, nil
}

// cleanHeader убирает BOM и крайние пробелы из метки колонки
func cleanHeader(h string) string {
	return strings.TrimSpace(strings.ReplaceAll(h, "\ufeff", ""))
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
