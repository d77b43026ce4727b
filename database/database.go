// Package database хранилище реестра на SQLite: открытие соединения,
// миграции по статической схеме и универсальный EntityStore для всех
// видов сущностей.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"promreestr/schema"
)

// DBConfig конфигурация подключения к БД
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store универсальное хранилище сущностей реестра.
// Все операции параметризованы видом сущности из статического реестра схем.
type Store struct {
	conn     *sql.DB
	registry *schema.Registry
}

// NewStore открывает подключение к SQLite и применяет миграции
func NewStore(dbPath string, config DBConfig, registry *schema.Registry) (*Store, error) {
	// Для in-memory SQLite требуется ровно одно соединение, иначе каждое
	// новое соединение получит пустую БД без таблиц
	if isInMemoryDB(dbPath) {
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Внешние ключи в SQLite выключены по умолчанию
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{conn: conn, registry: registry}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

// isInMemoryDB определяет, что путь относится к in-memory SQLite
func isInMemoryDB(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}
	return strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory")
}

// Close закрывает подключение
func (s *Store) Close() error {
	return s.conn.Close()
}

// Registry возвращает реестр схем, которым параметризовано хранилище
func (s *Store) Registry() *schema.Registry {
	return s.registry
}

// migrate создает таблицы всех видов сущностей из статического реестра схем
func (s *Store) migrate() error {
	for _, entity := range s.registry.Entities() {
		ddl := buildCreateTable(entity)
		if _, err := s.conn.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", entity.Table, err)
		}
	}
	log.Printf("Миграции применены: %d таблиц", len(s.registry.Entities()))
	return nil
}

// buildCreateTable собирает CREATE TABLE из описания сущности
func buildCreateTable(entity *schema.Entity) string {
	var cols []string
	cols = append(cols, "id INTEGER PRIMARY KEY AUTOINCREMENT")

	for _, f := range entity.Fields {
		col := fmt.Sprintf("%s %s", f.Name, sqlType(f.Type))
		if f.Required {
			col += " NOT NULL"
		}
		if f.Unique {
			col += " UNIQUE"
		}
		cols = append(cols, col)
	}

	// Все зависимые таблицы ссылаются на организацию
	if _, ok := entity.Field("organization_id"); ok {
		cols = append(cols, "FOREIGN KEY (organization_id) REFERENCES organizations(id)")
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", entity.Table, strings.Join(cols, ",\n\t"))
}

func sqlType(t schema.FieldType) string {
	switch t {
	case schema.FieldNumeric:
		return "REAL"
	case schema.FieldInteger, schema.FieldBoolean:
		return "INTEGER"
	default:
		return "TEXT"
	}
}
