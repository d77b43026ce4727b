package database

import (
	"fmt"
	"strconv"
	"strings"

	"promreestr/schema"
)

// MaxPerPage верхняя граница размера страницы
const MaxPerPage = 1000

// reservedParams параметры запроса, не являющиеся фильтрами по полям
var reservedParams = map[string]bool{
	"page": true, "per_page": true, "sort_by": true, "sort_order": true, "search": true,
}

// ListQuery параметры выборки: пагинация, сортировка и сырые параметры
// фильтрации (имя параметра → значение). Семантика фильтра определяется
// типом поля в схеме: точное совпадение, диапазон _min/_max, подстрока
// _like, диапазон дат _from/_to, сквозной search по текстовым полям.
type ListQuery struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
	Params    map[string]string
}

// ListResult страница выборки с метаданными пагинации
type ListResult struct {
	Items          []map[string]interface{} `json:"items"`
	Total          int                      `json:"total"`
	Pages          int                      `json:"pages"`
	CurrentPage    int                      `json:"current_page"`
	PerPage        int                      `json:"per_page"`
	HasNext        bool                     `json:"has_next"`
	HasPrev        bool                     `json:"has_prev"`
	FiltersApplied map[string]string        `json:"filters_applied"`
}

// List возвращает страницу записей вида kind с фильтрацией и сортировкой
func (s *Store) List(kind string, q ListQuery) (*ListResult, error) {
	entity, ok := s.registry.Get(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKindNotFound, kind)
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 50
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}

	where, args := buildWhere(entity, q.Params)

	var total int
	countQuery := "SELECT COUNT(*) FROM " + entity.Table + where
	if err := s.conn.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", kind, err)
	}

	order := buildOrder(entity, q.SortBy, q.SortOrder)
	offset := (q.Page - 1) * q.PerPage

	query := fmt.Sprintf("SELECT id, %s FROM %s%s%s LIMIT ? OFFSET ?",
		strings.Join(entity.FieldNames(), ", "), entity.Table, where, order)
	rows, err := s.conn.Query(query, append(args, q.PerPage, offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	defer rows.Close()

	items := make([]map[string]interface{}, 0)
	for rows.Next() {
		item, err := scanItem(rows, entity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", kind, err)
	}

	pages := (total + q.PerPage - 1) / q.PerPage

	applied := make(map[string]string)
	for k, v := range q.Params {
		if !reservedParams[k] && v != "" {
			applied[k] = v
		}
	}
	if search := q.Params["search"]; search != "" {
		applied["search"] = search
	}

	return &ListResult{
		Items:          items,
		Total:          total,
		Pages:          pages,
		CurrentPage:    q.Page,
		PerPage:        q.PerPage,
		HasNext:        q.Page < pages,
		HasPrev:        q.Page > 1,
		FiltersApplied: applied,
	}, nil
}

// buildWhere собирает WHERE из параметров запроса по типам полей схемы.
// Имена колонок берутся только из статической схемы, значения — только
// через плейсхолдеры: произвольные имена из запроса в SQL не попадают.
func buildWhere(entity *schema.Entity, params map[string]string) (string, []interface{}) {
	var conds []string
	var args []interface{}

	get := func(key string) (string, bool) {
		v, ok := params[key]
		return v, ok && v != ""
	}

	for _, f := range entity.Fields {
		// Точное совпадение
		if v, ok := get(f.Name); ok {
			conds = append(conds, f.Name+" = ?")
			args = append(args, exactValue(f, v))
		}

		switch {
		case f.Type == schema.FieldNumeric || f.Type == schema.FieldInteger:
			if v, ok := get(f.Name + "_min"); ok {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					conds = append(conds, f.Name+" >= ?")
					args = append(args, n)
				}
			}
			if v, ok := get(f.Name + "_max"); ok {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					conds = append(conds, f.Name+" <= ?")
					args = append(args, n)
				}
			}
		case f.Type == schema.FieldText:
			if v, ok := get(f.Name + "_like"); ok {
				conds = append(conds, f.Name+" LIKE ?")
				args = append(args, "%"+v+"%")
			}
		case f.Type == schema.FieldDate:
			// Даты хранятся строками ISO, лексикографическое сравнение корректно
			if v, ok := get(f.Name + "_from"); ok {
				conds = append(conds, f.Name+" >= ?")
				args = append(args, v)
			}
			if v, ok := get(f.Name + "_to"); ok {
				conds = append(conds, f.Name+" <= ?")
				args = append(args, v)
			}
			if v, ok := get(f.Name + "_like"); ok {
				conds = append(conds, f.Name+" LIKE ?")
				args = append(args, "%"+v+"%")
			}
		}
	}

	// Сквозной поиск по всем текстовым полям
	if search, ok := get("search"); ok {
		var parts []string
		for _, f := range entity.Fields {
			if f.Type == schema.FieldText {
				parts = append(parts, f.Name+" LIKE ?")
				args = append(args, "%"+search+"%")
			}
		}
		if len(parts) > 0 {
			conds = append(conds, "("+strings.Join(parts, " OR ")+")")
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// exactValue приводит строковый параметр точного совпадения к типу колонки
func exactValue(f schema.Field, v string) interface{} {
	switch f.Type {
	case schema.FieldNumeric:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	case schema.FieldInteger:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	case schema.FieldBoolean:
		switch strings.ToLower(v) {
		case "true", "1", "yes", "да":
			return 1
		case "false", "0", "no", "нет":
			return 0
		}
	}
	return v
}

// buildOrder собирает ORDER BY; имя поля обязано существовать в схеме
func buildOrder(entity *schema.Entity, sortBy, sortOrder string) string {
	if sortBy == "" {
		return ""
	}
	if sortBy != "id" {
		if _, ok := entity.Field(sortBy); !ok {
			return ""
		}
	}
	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", sortBy, dir)
}

// NumericStat минимум и максимум числового поля
type NumericStat struct {
	Min  interface{} `json:"min"`
	Max  interface{} `json:"max"`
	Type string      `json:"type"`
}

// TableStats сводная статистика по таблице
type TableStats struct {
	TotalRecords int                     `json:"total_records"`
	NumericStats map[string]NumericStat  `json:"numeric_stats"`
	TextValues   map[string][]string     `json:"text_values"`
}

// Stats возвращает статистику по таблице: количество записей,
// min/max числовых полей и до 100 уникальных значений текстовых полей
func (s *Store) Stats(kind string) (*TableStats, error) {
	entity, ok := s.registry.Get(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKindNotFound, kind)
	}

	stats := &TableStats{
		NumericStats: make(map[string]NumericStat),
		TextValues:   make(map[string][]string),
	}

	if err := s.conn.QueryRow("SELECT COUNT(*) FROM " + entity.Table).Scan(&stats.TotalRecords); err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", kind, err)
	}

	for _, f := range entity.Fields {
		switch f.Type {
		case schema.FieldNumeric, schema.FieldInteger:
			var min, max interface{}
			query := fmt.Sprintf("SELECT MIN(%s), MAX(%s) FROM %s WHERE %s IS NOT NULL",
				f.Name, f.Name, entity.Table, f.Name)
			if err := s.conn.QueryRow(query).Scan(&min, &max); err != nil {
				continue
			}
			if min == nil && max == nil {
				continue
			}
			stats.NumericStats[f.Name] = NumericStat{Min: min, Max: max, Type: string(f.Type)}
		case schema.FieldText:
			query := fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL AND %s != '' LIMIT 100",
				f.Name, entity.Table, f.Name, f.Name)
			rows, err := s.conn.Query(query)
			if err != nil {
				continue
			}
			var values []string
			for rows.Next() {
				var v string
				if err := rows.Scan(&v); err == nil {
					values = append(values, v)
				}
			}
			rows.Close()
			if len(values) > 0 {
				stats.TextValues[f.Name] = values
			}
		}
	}

	return stats, nil
}
