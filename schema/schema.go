package schema

// FieldType семантический тип атрибута сущности.
// Определяет допустимые операции фильтрации и SQL-тип колонки.
type FieldType string

const (
	FieldText    FieldType = "text"
	FieldNumeric FieldType = "numeric"
	FieldInteger FieldType = "integer"
	FieldBoolean FieldType = "boolean"
	FieldDate    FieldType = "date"
)

// Field описание одного атрибута сущности
type Field struct {
	Name      string    `json:"name"`
	Type      FieldType `json:"type"`
	Required  bool      `json:"required"`
	Unique    bool      `json:"unique,omitempty"`
	MaxLength int       `json:"max_length,omitempty"`
}

// SupportsRange поддерживает ли поле фильтрацию по диапазону (_min/_max, _from/_to)
func (f Field) SupportsRange() bool {
	return f.Type == FieldNumeric || f.Type == FieldInteger || f.Type == FieldDate
}

// SupportsLike поддерживает ли поле поиск по подстроке (_like)
func (f Field) SupportsLike() bool {
	return f.Type == FieldText || f.Type == FieldDate
}

// Entity описание одного вида сущности реестра
type Entity struct {
	// Kind имя вида в URL и в API (например "financial-indicators")
	Kind string `json:"kind"`
	// Table имя таблицы в БД (например "financial_indicators")
	Table string `json:"table"`
	// DisplayName человекочитаемое имя
	DisplayName string `json:"display_name"`
	// Fields атрибуты без служебного id; порядок фиксирован
	Fields []Field `json:"fields"`
}

// Field возвращает описание атрибута по имени
func (e *Entity) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredFields возвращает имена обязательных атрибутов
func (e *Entity) RequiredFields() []string {
	var out []string
	for _, f := range e.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// FieldNames возвращает имена всех атрибутов в порядке объявления
func (e *Entity) FieldNames() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Name)
	}
	return out
}

// Registry статический реестр всех видов сущностей.
// Строится один раз при старте процесса и передается явно всем потребителям
// (хранилищу, сборщику записей, CRUD-обработчикам).
type Registry struct {
	entities []*Entity
	byKind   map[string]*Entity
}

// NewRegistry создает реестр со всеми 12 видами сущностей
func NewRegistry() *Registry {
	r := &Registry{byKind: make(map[string]*Entity)}
	for _, e := range declaredEntities() {
		r.entities = append(r.entities, e)
		r.byKind[e.Kind] = e
	}
	return r
}

// Get возвращает описание вида сущности по имени вида
func (r *Registry) Get(kind string) (*Entity, bool) {
	e, ok := r.byKind[kind]
	return e, ok
}

// Entities возвращает все виды сущностей в порядке объявления
func (r *Registry) Entities() []*Entity {
	return r.entities
}

// Kinds возвращает имена всех видов сущностей
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, e.Kind)
	}
	return out
}
