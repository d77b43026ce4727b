// Package mapping преобразует слабоструктурированные исходные записи
// (строки Excel или объекты внешнего API с русскоязычными метками полей)
// в канонический набор сущностей реестра.
package mapping

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// nullTokens строковые значения, трактуемые как отсутствие данных
var nullTokens = map[string]bool{
	"nan":        true,
	"none":       true,
	"null":       true,
	"н/д":        true,
	"нет данных": true,
	"—":          true,
	"-":          true,
}

var trueTokens = map[string]bool{
	"true": true, "1": true, "yes": true, "y": true,
	"да": true, "истина": true, "верно": true, "есть": true,
	"ok": true, "ок": true,
}

var falseTokens = map[string]bool{
	"false": true, "0": true, "no": true, "n": true,
	"нет": true, "ложь": true, "неверно": true,
}

var (
	numCleanRe  = regexp.MustCompile(`[^\d\.\,\-]+`)
	nonDigitRe  = regexp.MustCompile(`\D+`)
	degenerates = map[string]bool{"": true, ".": true, "-": true, "-.": true, ".-": true}
)

// NormalizeScalar приводит сырое значение к канонической форме:
// nil для всех сентинелей отсутствия (nil, NaN, пустая строка,
// строковые токены вида "н/д"/"nan"/"—"), обрезанная строка для строк,
// остальные значения без изменений. Единая точка входа: через нее проходят
// все остальные примитивы и сборщик записей.
func NormalizeScalar(v interface{}) interface{} {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		t := strings.TrimSpace(s)
		if t == "" || nullTokens[strings.ToLower(t)] {
			return nil
		}
		return t
	case float64:
		if math.IsNaN(s) {
			return nil
		}
		return s
	case float32:
		if math.IsNaN(float64(s)) {
			return nil
		}
		return s
	default:
		return v
	}
}

// NormalizeBool распознает булево значение из разноязычных токенов.
// Неизвестное написание дает nil (неизвестно), а не false.
func NormalizeBool(v interface{}) interface{} {
	v = NormalizeScalar(v)
	if v == nil {
		return nil
	}
	if b, ok := v.(bool); ok {
		return b
	}
	s := strings.ToLower(strings.TrimSpace(toString(v)))
	if trueTokens[s] {
		return true
	}
	if falseTokens[s] {
		return false
	}
	return nil
}

// NormalizeFloat парсит число из произвольной записи: выбрасывает все,
// кроме цифр, точек, запятых и минусов, убирает пробелы (включая
// неразрывные), запятую трактует как десятичный разделитель.
// Неразборчивое значение дает nil, ошибок не бывает.
func NormalizeFloat(v interface{}) interface{} {
	v = NormalizeScalar(v)
	if v == nil {
		return nil
	}
	switch n := v.(type) {
	case bool:
		return nil
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	s := numCleanRe.ReplaceAllString(toString(v), "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if degenerates[s] {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	return f
}

// NormalizeInt парсит целое через NormalizeFloat с округлением до ближайшего
func NormalizeInt(v interface{}) interface{} {
	f := NormalizeFloat(v)
	if f == nil {
		return nil
	}
	return int(math.Round(f.(float64)))
}

// NormalizeINN выделяет из значения цифры ИНН: все нецифровые символы
// отбрасываются, берутся первые 12 цифр. Если цифр нет — nil.
func NormalizeINN(v interface{}) interface{} {
	s := NormalizeScalar(v)
	if s == nil {
		return nil
	}
	digits := nonDigitRe.ReplaceAllString(toString(s), "")
	if digits == "" {
		return nil
	}
	if len(digits) > 12 {
		digits = digits[:12]
	}
	return digits
}

// toString строковое представление скаляра для парсинга.
// Числа печатаются без экспоненты, чтобы не терять разряды.
func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(v)
	}
}
