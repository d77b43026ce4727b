package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"promreestr/schema"
)

var (
	// ErrKindNotFound неизвестный вид сущности
	ErrKindNotFound = errors.New("unknown entity kind")
	// ErrNotFound запись с указанным id отсутствует
	ErrNotFound = errors.New("record not found")
)

// ValidationError отсутствие обязательных полей при создании записи
type ValidationError struct {
	Kind          string
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: отсутствуют обязательные поля: %s", e.Kind, strings.Join(e.MissingFields, ", "))
}

// Create создает запись вида kind и возвращает присвоенный идентификатор
// вместе с сохраненными полями. Обязательные поля без значения дают
// ValidationError до обращения к БД.
func (s *Store) Create(kind string, fields map[string]interface{}) (int64, map[string]interface{}, error) {
	entity, ok := s.registry.Get(kind)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %s", ErrKindNotFound, kind)
	}

	var missing []string
	for _, name := range entity.RequiredFields() {
		if v, ok := fields[name]; !ok || v == nil || v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return 0, nil, &ValidationError{Kind: kind, MissingFields: missing}
	}

	var cols []string
	var placeholders []string
	var args []interface{}
	for _, f := range entity.Fields {
		v, ok := fields[f.Name]
		if !ok || v == nil {
			continue
		}
		cols = append(cols, f.Name)
		placeholders = append(placeholders, "?")
		args = append(args, toStorageValue(f, v))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		entity.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	res, err := s.conn.Exec(query, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to insert into %s: %w", entity.Table, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get insert id for %s: %w", entity.Table, err)
	}

	stored, err := s.Get(kind, id)
	if err != nil {
		return 0, nil, err
	}
	return id, stored, nil
}

// Get возвращает запись по идентификатору
func (s *Store) Get(kind string, id int64) (map[string]interface{}, error) {
	entity, ok := s.registry.Get(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKindNotFound, kind)
	}

	query := fmt.Sprintf("SELECT id, %s FROM %s WHERE id = ?",
		strings.Join(entity.FieldNames(), ", "), entity.Table)
	row := s.conn.QueryRow(query, id)

	item, err := scanItem(row, entity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%d: %w", kind, id, err)
	}
	return item, nil
}

// Update обновляет переданные поля записи и возвращает обновленную запись.
// Поля, отсутствующие в fields, не трогаются; явный nil обнуляет колонку.
func (s *Store) Update(kind string, id int64, fields map[string]interface{}) (map[string]interface{}, error) {
	entity, ok := s.registry.Get(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKindNotFound, kind)
	}

	var sets []string
	var args []interface{}
	for _, f := range entity.Fields {
		v, ok := fields[f.Name]
		if !ok {
			continue
		}
		sets = append(sets, f.Name+" = ?")
		if v == nil {
			args = append(args, nil)
		} else {
			args = append(args, toStorageValue(f, v))
		}
	}
	if len(sets) == 0 {
		return s.Get(kind, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", entity.Table, strings.Join(sets, ", "))
	res, err := s.conn.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s/%d: %w", kind, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	return s.Get(kind, id)
}

// Delete удаляет запись и возвращает ее последнее состояние
func (s *Store) Delete(kind string, id int64) (map[string]interface{}, error) {
	entity, ok := s.registry.Get(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKindNotFound, kind)
	}

	item, err := s.Get(kind, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.conn.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", entity.Table), id); err != nil {
		return nil, fmt.Errorf("failed to delete %s/%d: %w", kind, id, err)
	}
	return item, nil
}

// toStorageValue приводит значение к виду, понятному драйверу SQLite
func toStorageValue(f schema.Field, v interface{}) interface{} {
	if f.Type == schema.FieldBoolean {
		if b, ok := v.(bool); ok {
			if b {
				return 1
			}
			return 0
		}
	}
	return v
}

// scannable покрывает *sql.Row и *sql.Rows
type scannable interface {
	Scan(dest ...interface{}) error
}

// scanItem читает одну строку результата в map по описанию сущности.
// Булевы колонки возвращаются как bool, отсутствующие значения — как nil.
func scanItem(row scannable, entity *schema.Entity) (map[string]interface{}, error) {
	dest := make([]interface{}, len(entity.Fields)+1)
	var id int64
	dest[0] = &id
	holders := make([]interface{}, len(entity.Fields))
	for i := range entity.Fields {
		holders[i] = new(interface{})
		dest[i+1] = holders[i]
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	item := map[string]interface{}{"id": id}
	for i, f := range entity.Fields {
		raw := *(holders[i].(*interface{}))
		item[f.Name] = fromStorageValue(f, raw)
	}
	return item, nil
}

func fromStorageValue(f schema.Field, raw interface{}) interface{} {
	if raw == nil {
		return nil
	}
	switch f.Type {
	case schema.FieldBoolean:
		if n, ok := raw.(int64); ok {
			return n != 0
		}
	case schema.FieldText, schema.FieldDate:
		if b, ok := raw.([]byte); ok {
			return string(b)
		}
	}
	if b, ok := raw.([]byte); ok {
		return string(b)
	}
	return raw
}
