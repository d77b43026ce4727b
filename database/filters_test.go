package database

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrganizations(t *testing.T, s *Store) {
	t.Helper()
	orgs := []map[string]interface{}{
		{"inn": "1000000001", "name": "Завод №1", "final_status": "Действует", "registration_date": "2005-03-10"},
		{"inn": "1000000002", "name": "Химкомбинат", "final_status": "Действует", "registration_date": "2010-07-22"},
		{"inn": "1000000003", "name": "Пищекомбинат", "final_status": "Ликвидирована", "registration_date": "2018-01-15"},
	}
	for _, org := range orgs {
		_, _, err := s.Create("organizations", org)
		require.NoError(t, err)
	}
}

func TestListAll(t *testing.T) {
	s := newTestStore(t)
	seedOrganizations(t, s)

	res, err := s.List("organizations", ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Len(t, res.Items, 3)
	assert.Equal(t, 1, res.Pages)
	assert.False(t, res.HasNext)
	assert.False(t, res.HasPrev)
}

func TestListExactFilter(t *testing.T) {
	s := newTestStore(t)
	seedOrganizations(t, s)

	res, err := s.List("organizations", ListQuery{
		Params: map[string]string{"final_status": "Действует"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "Действует", res.FiltersApplied["final_status"])
}

func TestListLikeFilter(t *testing.T) {
	s := newTestStore(t)
	seedOrganizations(t, s)

	res, err := s.List("organizations", ListQuery{
		Params: map[string]string{"name_like": "комбинат"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
}

func TestListSearchAcrossTextFields(t *testing.T) {
	s := newTestStore(t)
	seedOrganizations(t, s)

	res, err := s.List("organizations", ListQuery{
		Params: map[string]string{"search": "Завод"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestListDateRange(t *testing.T) {
	s := newTestStore(t)
	seedOrganizations(t, s)

	res, err := s.List("organizations", ListQuery{
		Params: map[string]string{
			"registration_date_from": "2008-01-01",
			"registration_date_to":   "2015-12-31",
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Химкомбинат", res.Items[0]["name"])
}

func TestListNumericRange(t *testing.T) {
	s := newTestStore(t)
	orgID := createTestOrg(t, s, "1234567890", "ООО Ромашка")

	for year, revenue := range map[int]float64{2021: 100, 2022: 500, 2023: 900} {
		_, _, err := s.Create("financial-indicators", map[string]interface{}{
			"organization_id": orgID,
			"year":            year,
			"revenue":         revenue,
		})
		require.NoError(t, err)
	}

	res, err := s.List("financial-indicators", ListQuery{
		Params: map[string]string{"revenue_min": "200", "revenue_max": "800"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, int64(2022), res.Items[0]["year"])
}

func TestListSorting(t *testing.T) {
	s := newTestStore(t)
	seedOrganizations(t, s)

	res, err := s.List("organizations", ListQuery{SortBy: "name", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "Химкомбинат", res.Items[0]["name"])

	// Несуществующее поле сортировки игнорируется
	res, err = s.List("organizations", ListQuery{SortBy: "nonexistent"})
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
}

func TestListPagination(t *testing.T) {
	s := newTestStore(t)
	for i := 1; i <= 5; i++ {
		createTestOrg(t, s, "100000000"+strconv.Itoa(i), "Организация "+strconv.Itoa(i))
	}

	res, err := s.List("organizations", ListQuery{Page: 2, PerPage: 2, SortBy: "id"})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 3, res.Pages)
	assert.Len(t, res.Items, 2)
	assert.True(t, res.HasNext)
	assert.True(t, res.HasPrev)
	assert.Equal(t, "Организация 3", res.Items[0]["name"])
}

func TestListPerPageCap(t *testing.T) {
	s := newTestStore(t)
	seedOrganizations(t, s)

	res, err := s.List("organizations", ListQuery{PerPage: 100000})
	require.NoError(t, err)
	assert.Equal(t, MaxPerPage, res.PerPage)
}

func TestListBooleanExact(t *testing.T) {
	s := newTestStore(t)
	orgID := createTestOrg(t, s, "1234567890", "ООО Ромашка")

	_, _, err := s.Create("support", map[string]interface{}{
		"organization_id":           orgID,
		"system_forming_enterprise": true,
	})
	require.NoError(t, err)
	_, _, err = s.Create("support", map[string]interface{}{
		"organization_id":           orgID,
		"system_forming_enterprise": false,
	})
	require.NoError(t, err)

	res, err := s.List("support", ListQuery{
		Params: map[string]string{"system_forming_enterprise": "true"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, true, res.Items[0]["system_forming_enterprise"])
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	orgID := createTestOrg(t, s, "1234567890", "ООО Ромашка")

	for year, revenue := range map[int]float64{2022: 100, 2023: 900} {
		_, _, err := s.Create("financial-indicators", map[string]interface{}{
			"organization_id": orgID,
			"year":            year,
			"revenue":         revenue,
		})
		require.NoError(t, err)
	}

	stats, err := s.Stats("financial-indicators")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRecords)

	rev, ok := stats.NumericStats["revenue"]
	require.True(t, ok)
	assert.Equal(t, 100.0, rev.Min)
	assert.Equal(t, 900.0, rev.Max)
}

func TestStatsTextValues(t *testing.T) {
	s := newTestStore(t)
	seedOrganizations(t, s)

	stats, err := s.Stats("organizations")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalRecords)
	assert.ElementsMatch(t, []string{"Действует", "Ликвидирована"}, stats.TextValues["final_status"])
}
