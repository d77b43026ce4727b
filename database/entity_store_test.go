package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promreestr/schema"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:", DBConfig{}, schema.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestOrg(t *testing.T, s *Store, inn, name string) int64 {
	t.Helper()
	id, _, err := s.Create("organizations", map[string]interface{}{
		"inn":  inn,
		"name": name,
	})
	require.NoError(t, err)
	return id
}

func TestStoreMigrationCreatesAllTables(t *testing.T) {
	s := newTestStore(t)

	for _, entity := range s.registry.Entities() {
		var name string
		err := s.conn.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", entity.Table,
		).Scan(&name)
		assert.NoError(t, err, "таблица %s не создана", entity.Table)
	}
}

func TestCreateAndGetOrganization(t *testing.T) {
	s := newTestStore(t)

	id, stored, err := s.Create("organizations", map[string]interface{}{
		"inn":       "1234567890",
		"name":      "ООО Ромашка",
		"full_name": "Общество с ограниченной ответственностью Ромашка",
		"website":   nil,
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))
	assert.Equal(t, "1234567890", stored["inn"])
	assert.Equal(t, "ООО Ромашка", stored["name"])
	assert.Nil(t, stored["website"])

	got, err := s.Get("organizations", id)
	require.NoError(t, err)
	assert.Equal(t, id, got["id"])
	assert.Equal(t, "ООО Ромашка", got["name"])
}

func TestCreateMissingRequiredFields(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Create("organizations", map[string]interface{}{
		"full_name": "Безымянная",
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"inn", "name"}, verr.MissingFields)
}

func TestCreateUnknownKind(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Create("widgets", map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, ErrKindNotFound)
}

func TestCreateDuplicateINN(t *testing.T) {
	s := newTestStore(t)

	createTestOrg(t, s, "1234567890", "Первая")
	_, _, err := s.Create("organizations", map[string]interface{}{
		"inn":  "1234567890",
		"name": "Вторая",
	})
	assert.Error(t, err, "дубликат ИНН должен отклоняться уникальным индексом")
}

func TestCreateDependentWithBoolean(t *testing.T) {
	s := newTestStore(t)
	orgID := createTestOrg(t, s, "1234567890", "ООО Ромашка")

	id, stored, err := s.Create("support", map[string]interface{}{
		"organization_id":           orgID,
		"system_forming_enterprise": true,
		"moscow_support_received":   false,
		"sme_status":                "Малое предприятие",
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))
	assert.Equal(t, true, stored["system_forming_enterprise"])
	assert.Equal(t, false, stored["moscow_support_received"])
	assert.Nil(t, stored["support_data"])
}

func TestCreateFinancialIndicator(t *testing.T) {
	s := newTestStore(t)
	orgID := createTestOrg(t, s, "1234567890", "ООО Ромашка")

	_, stored, err := s.Create("financial-indicators", map[string]interface{}{
		"organization_id": orgID,
		"year":            2023,
		"revenue":         1000.5,
		"employee_count":  120,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2023), stored["year"])
	assert.Equal(t, 1000.5, stored["revenue"])
	assert.Nil(t, stored["net_profit"])
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	id := createTestOrg(t, s, "1234567890", "ООО Ромашка")

	updated, err := s.Update("organizations", id, map[string]interface{}{
		"name":      "ООО Ромашка Плюс",
		"full_name": nil, // явное обнуление
	})
	require.NoError(t, err)
	assert.Equal(t, "ООО Ромашка Плюс", updated["name"])
	assert.Nil(t, updated["full_name"])
	assert.Equal(t, "1234567890", updated["inn"], "нетронутые поля сохраняются")
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Update("organizations", 9999, map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	id := createTestOrg(t, s, "1234567890", "ООО Ромашка")

	deleted, err := s.Delete("organizations", id)
	require.NoError(t, err)
	assert.Equal(t, "ООО Ромашка", deleted["name"])

	_, err = s.Get("organizations", id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("organizations", 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
