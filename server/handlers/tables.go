package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"promreestr/database"
	"promreestr/schema"
)

// TablesHandler универсальный CRUD по всем видам сущностей реестра.
// Доступные виды и их поля определяются статическим реестром схем,
// один набор обработчиков обслуживает все таблицы.
type TablesHandler struct {
	store    *database.Store
	registry *schema.Registry
}

// NewTablesHandler создает обработчик таблиц
func NewTablesHandler(store *database.Store) *TablesHandler {
	return &TablesHandler{store: store, registry: store.Registry()}
}

// TableInfo описание таблицы для списка
type TableInfo struct {
	Kind        string `json:"kind"`
	Table       string `json:"table"`
	DisplayName string `json:"display_name"`
}

// TableListResponse структура ответа для списка таблиц
type TableListResponse struct {
	Tables []TableInfo `json:"tables"`
	Total  int         `json:"total"`
}

// HandleTablesList обработчик списка таблиц
// @Summary Получить список таблиц реестра
// @Description Возвращает все виды сущностей реестра с именами таблиц
// @Tags tables
// @Produce json
// @Success 200 {object} TableListResponse "Список таблиц"
// @Router /api/tables [get]
func (h *TablesHandler) HandleTablesList(c *gin.Context) {
	tables := make([]TableInfo, 0, len(h.registry.Entities()))
	for _, e := range h.registry.Entities() {
		tables = append(tables, TableInfo{
			Kind:        e.Kind,
			Table:       e.Table,
			DisplayName: e.DisplayName,
		})
	}
	SendJSONResponse(c, http.StatusOK, TableListResponse{Tables: tables, Total: len(tables)})
}

// ColumnInfo описание колонки таблицы
type ColumnInfo struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Required      bool   `json:"required"`
	Unique        bool   `json:"unique,omitempty"`
	SupportsRange bool   `json:"supports_range"`
	SupportsLike  bool   `json:"supports_like"`
}

// ColumnsResponse структура ответа для колонок таблицы
type ColumnsResponse struct {
	Table   string       `json:"table"`
	Columns []ColumnInfo `json:"columns"`
}

// HandleTableColumns обработчик описания колонок таблицы
// @Summary Получить колонки таблицы
// @Description Возвращает атрибуты вида сущности с типами и доступными фильтрами
// @Tags tables
// @Produce json
// @Param table path string true "Вид сущности"
// @Success 200 {object} ColumnsResponse "Колонки таблицы"
// @Failure 404 {object} ErrorResponse "Неизвестный вид сущности"
// @Router /api/tables/{table}/columns [get]
func (h *TablesHandler) HandleTableColumns(c *gin.Context) {
	entity, ok := h.registry.Get(c.Param("table"))
	if !ok {
		SendJSONError(c, http.StatusNotFound, "неизвестный вид сущности: "+c.Param("table"))
		return
	}

	columns := make([]ColumnInfo, 0, len(entity.Fields))
	for _, f := range entity.Fields {
		columns = append(columns, ColumnInfo{
			Name:          f.Name,
			Type:          string(f.Type),
			Required:      f.Required,
			Unique:        f.Unique,
			SupportsRange: f.SupportsRange(),
			SupportsLike:  f.SupportsLike(),
		})
	}
	SendJSONResponse(c, http.StatusOK, ColumnsResponse{Table: entity.Kind, Columns: columns})
}

// HandleTableData обработчик выборки записей таблицы
// @Summary Получить записи таблицы
// @Description Возвращает страницу записей с фильтрацией по полям, диапазонам и подстрокам
// @Tags tables
// @Produce json
// @Param table path string true "Вид сущности"
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Размер страницы (не более 1000)" default(50)
// @Param sort_by query string false "Поле сортировки"
// @Param sort_order query string false "Направление сортировки (asc/desc)"
// @Param search query string false "Сквозной поиск по текстовым полям"
// @Success 200 {object} database.ListResult "Страница записей"
// @Failure 404 {object} ErrorResponse "Неизвестный вид сущности"
// @Router /api/tables/{table}/data [get]
func (h *TablesHandler) HandleTableData(c *gin.Context) {
	result, err := h.store.List(c.Param("table"), parseListQuery(c))
	if err != nil {
		h.sendStoreError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, result)
}

// CreatedResponse структура ответа при создании записи
type CreatedResponse struct {
	ID   int64                  `json:"id"`
	Item map[string]interface{} `json:"item"`
}

// HandleTableCreate обработчик создания записи
// @Summary Создать запись
// @Description Создает запись вида сущности из JSON тела запроса
// @Tags tables
// @Accept json
// @Produce json
// @Param table path string true "Вид сущности"
// @Param record body object true "Поля записи"
// @Success 201 {object} CreatedResponse "Созданная запись"
// @Failure 400 {object} ErrorResponse "Отсутствуют обязательные поля"
// @Failure 409 {object} ErrorResponse "Нарушение уникальности"
// @Router /api/tables/{table}/data [post]
func (h *TablesHandler) HandleTableCreate(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		SendJSONError(c, http.StatusBadRequest, "некорректное JSON тело запроса: "+err.Error())
		return
	}

	id, stored, err := h.store.Create(c.Param("table"), fields)
	if err != nil {
		h.sendStoreError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusCreated, CreatedResponse{ID: id, Item: stored})
}

// HandleTableGet обработчик чтения записи по идентификатору
// @Summary Получить запись
// @Tags tables
// @Produce json
// @Param table path string true "Вид сущности"
// @Param id path int true "Идентификатор записи"
// @Success 200 {object} map[string]interface{} "Запись"
// @Failure 404 {object} ErrorResponse "Запись не найдена"
// @Router /api/tables/{table}/data/{id} [get]
func (h *TablesHandler) HandleTableGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.store.Get(c.Param("table"), id)
	if err != nil {
		h.sendStoreError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, item)
}

// HandleTableUpdate обработчик частичного обновления записи
// @Summary Обновить запись
// @Description Обновляет переданные поля записи; явный null обнуляет поле
// @Tags tables
// @Accept json
// @Produce json
// @Param table path string true "Вид сущности"
// @Param id path int true "Идентификатор записи"
// @Param record body object true "Обновляемые поля"
// @Success 200 {object} map[string]interface{} "Обновленная запись"
// @Failure 404 {object} ErrorResponse "Запись не найдена"
// @Router /api/tables/{table}/data/{id} [put]
func (h *TablesHandler) HandleTableUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		SendJSONError(c, http.StatusBadRequest, "некорректное JSON тело запроса: "+err.Error())
		return
	}

	item, err := h.store.Update(c.Param("table"), id, fields)
	if err != nil {
		h.sendStoreError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, item)
}

// DeletedResponse структура ответа при удалении записи
type DeletedResponse struct {
	Deleted bool                   `json:"deleted"`
	Item    map[string]interface{} `json:"item"`
}

// HandleTableDelete обработчик удаления записи
// @Summary Удалить запись
// @Description Удаляет запись и возвращает ее последнее состояние
// @Tags tables
// @Produce json
// @Param table path string true "Вид сущности"
// @Param id path int true "Идентификатор записи"
// @Success 200 {object} DeletedResponse "Удаленная запись"
// @Failure 404 {object} ErrorResponse "Запись не найдена"
// @Router /api/tables/{table}/data/{id} [delete]
func (h *TablesHandler) HandleTableDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.store.Delete(c.Param("table"), id)
	if err != nil {
		h.sendStoreError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, DeletedResponse{Deleted: true, Item: item})
}

// HandleTableStats обработчик статистики таблицы
// @Summary Получить статистику таблицы
// @Description Возвращает количество записей, min/max числовых полей и уникальные значения текстовых
// @Tags tables
// @Produce json
// @Param table path string true "Вид сущности"
// @Success 200 {object} database.TableStats "Статистика таблицы"
// @Failure 404 {object} ErrorResponse "Неизвестный вид сущности"
// @Router /api/tables/{table}/stats [get]
func (h *TablesHandler) HandleTableStats(c *gin.Context) {
	stats, err := h.store.Stats(c.Param("table"))
	if err != nil {
		h.sendStoreError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, stats)
}

// parseListQuery собирает параметры выборки из строки запроса
func parseListQuery(c *gin.Context) database.ListQuery {
	q := database.ListQuery{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Params:    make(map[string]string),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "50"))

	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			q.Params[key] = values[0]
		}
	}
	return q
}

// parseID читает идентификатор записи из пути
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		SendJSONError(c, http.StatusBadRequest, "некорректный идентификатор записи: "+c.Param("id"))
		return 0, false
	}
	return id, true
}

// sendStoreError переводит ошибки хранилища в HTTP статусы
func (h *TablesHandler) sendStoreError(c *gin.Context, err error) {
	var validationErr *database.ValidationError
	switch {
	case errors.As(err, &validationErr):
		SendJSONError(c, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, database.ErrKindNotFound):
		SendJSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrNotFound):
		SendJSONError(c, http.StatusNotFound, "запись не найдена")
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		SendJSONError(c, http.StatusConflict, "нарушение уникальности: "+err.Error())
	default:
		SendJSONError(c, http.StatusInternalServerError, err.Error())
	}
}
