package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"promreestr/mapping"
)

// ReadCSVFile читает CSV-файл в сырые записи. Выгрузки реестров часто
// приходят в Windows-1251: если содержимое не является валидным UTF-8,
// оно перекодируется. Разделитель определяется по заголовку
// (точка с запятой приоритетнее запятой).
func ReadCSVFile(filePath string) ([]mapping.RawRecord, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	if !utf8.Valid(data) {
		decoder := charmap.Windows1251.NewDecoder()
		decoded, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode Windows-1251: %w", err)
		}
		data = decoded
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = detectDelimiter(string(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return rowsToRecords(rows)
}

// detectDelimiter выбирает разделитель по первой строке файла
func detectDelimiter(data string) rune {
	firstLine := data
	if i := strings.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if strings.Count(firstLine, ";") >= strings.Count(firstLine, ",") && strings.Contains(firstLine, ";") {
		return ';'
	}
	return ','
}
