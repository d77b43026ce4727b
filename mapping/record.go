package mapping

import "strings"

// RawRecord одна необработанная входная запись: отображение свободных
// человекочитаемых меток (колонки Excel или поля API) в значения.
// Значения могут быть скалярами, вложенными map[string]interface{}
// или []interface{}. Запись читается, но не модифицируется.
type RawRecord map[string]interface{}

// Pick возвращает первое ненулевое (после NormalizeScalar) значение
// среди альтернативных меток. Метки одного и того же атрибута расходятся
// между источниками ("Площадь ЗУ" в Excel против "Площадь ЗУ (га)" в API),
// поэтому каждый атрибут ищется по упорядоченному списку псевдонимов.
// Отсутствие значимого совпадения по всем псевдонимам дает nil.
func Pick(record RawRecord, aliases ...string) interface{} {
	for _, alias := range aliases {
		if raw, ok := record[alias]; ok {
			if v := NormalizeScalar(raw); v != nil {
				return v
			}
		}
	}
	return nil
}

// pickNested ищет значение сначала во вложенной секции, затем среди
// псевдонимов верхнего уровня. Отсутствием считается только nil:
// явные false/0 во вложенной секции не перекрываются значением сверху.
func pickNested(section RawRecord, record RawRecord, nestedAlias string, topAliases ...string) interface{} {
	if section != nil {
		if v := Pick(section, nestedAlias); v != nil {
			return v
		}
	}
	return Pick(record, topAliases...)
}

// nestedSection возвращает вложенный под-объект записи по метке,
// если он есть и является отображением
func nestedSection(record RawRecord, label string) RawRecord {
	raw, ok := record[label]
	if !ok {
		return nil
	}
	if m, ok := raw.(map[string]interface{}); ok {
		return RawRecord(m)
	}
	return nil
}

// SplitList разбивает значение-перечень на элементы.
// Строка режется по точке с запятой (при ее отсутствии — по запятой),
// элементы обрезаются, пустые отбрасываются. Готовая последовательность
// нормализуется поэлементно. Прочие значения дают nil.
func SplitList(v interface{}) []string {
	switch raw := v.(type) {
	case string:
		sep := ";"
		if !strings.Contains(raw, ";") {
			sep = ","
		}
		var out []string
		for _, part := range strings.Split(raw, sep) {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	case []interface{}:
		var out []string
		for _, item := range raw {
			if s := NormalizeScalar(item); s != nil {
				out = append(out, strings.TrimSpace(toString(s)))
			}
		}
		return out
	case []string:
		var out []string
		for _, item := range raw {
			if s := NormalizeScalar(item); s != nil {
				out = append(out, s.(string))
			}
		}
		return out
	default:
		return nil
	}
}

// JoinList собирает перечень обратно в каноническую строку "a; b; c"
func JoinList(items []string) interface{} {
	if len(items) == 0 {
		return nil
	}
	return strings.Join(items, "; ")
}
