package mapping

import (
	"sort"
	"strings"
)

// YearSeries восстановленное отображение год → значение для одного
// показателя. Ключ — строка из цифр ("2023").
type YearSeries map[string]interface{}

// CollectYearData восстанавливает годовой ряд показателя по ключевому слову.
// Данные приходят в двух несовместимых видах: плоские записи из Excel,
// где год зашит в метку колонки ("Выручка предприятия, тыс. руб. 2023"),
// и вложенные объекты API, где год — настоящий под-ключ. Вложенная форма
// надежнее (метку не нужно разбирать), поэтому проверяется первой;
// плоский разбор — только если вложенных данных нет нигде в записи.
func CollectYearData(record RawRecord, keyword string) YearSeries {
	if nested := collectYearDataNested(map[string]interface{}(record), keyword); len(nested) > 0 {
		return nested
	}
	return collectYearDataFlat(record, keyword)
}

// collectYearDataNested рекурсивно ищет под меткой с keyword вложенный
// объект вида {"2022": ..., "2023": ...}. Первое найденное совпадение
// (в глубину, соседи в порядке обхода) возвращается сразу.
// Во вложенном пути ключ-год обязан состоять ровно из 4 цифр.
func collectYearDataNested(obj interface{}, keyword string) YearSeries {
	switch node := obj.(type) {
	case map[string]interface{}:
		for label, value := range node {
			if strings.Contains(label, keyword) {
				if sub, ok := value.(map[string]interface{}); ok {
					out := YearSeries{}
					for yk, yv := range sub {
						if isAllDigits(yk) && len(yk) == 4 {
							out[yk] = NormalizeScalar(yv)
						}
					}
					if len(out) > 0 {
						return out
					}
				}
			}
		}
		for _, value := range node {
			if nested := collectYearDataNested(value, keyword); len(nested) > 0 {
				return nested
			}
		}
	case []interface{}:
		for _, item := range node {
			if nested := collectYearDataNested(item, keyword); len(nested) > 0 {
				return nested
			}
		}
	}
	return nil
}

// collectYearDataFlat собирает пары {год: значение} из плоских меток:
// метка содержит keyword, последний пробельный токен — число длиннее
// одного символа. Длина намеренно не ограничена 4 цифрами (в отличие от
// вложенного пути), но однозначные хвосты вроде "...уровень 3" отсекаются.
func collectYearDataFlat(record RawRecord, keyword string) YearSeries {
	out := YearSeries{}
	for label, value := range record {
		k := strings.TrimSpace(label)
		if !strings.Contains(k, keyword) {
			continue
		}
		parts := strings.Fields(k)
		if len(parts) == 0 {
			continue
		}
		year := parts[len(parts)-1]
		if isAllDigits(year) && len(year) > 1 {
			out[year] = NormalizeScalar(value)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Years возвращает отсортированный список лет ряда
func (s YearSeries) Years() []string {
	out := make([]string, 0, len(s))
	for y := range s {
		out = append(out, y)
	}
	sort.Strings(out)
	return out
}

// UnionYears объединяет множества лет нескольких рядов в отсортированный список
func UnionYears(series ...YearSeries) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range series {
		for y := range s {
			if !seen[y] {
				seen[y] = true
				out = append(out, y)
			}
		}
	}
	sort.Strings(out)
	return out
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
