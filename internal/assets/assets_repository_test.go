package assets

import (
	"testing"

	"assettrack/internal/repository"
	"assettrack/pkg/models"

	"github.com/stretchr/testify/assert"
)

// newTestRepository builds a repository with no live connection; the
// tests below only render SQL, they never execute it.
func newTestRepository() *AssetsRepository {
	return NewRepository(repository.NewRepository(nil))
}

func listSQL(t *testing.T, repo *AssetsRepository, listQuery models.AssetListQuery) string {
	t.Helper()
	sql, _, err := repo.getAssetQuery().
		Where(repo.listConditions(listQuery)...).
		ToSQL()
	assert.NoError(t, err)
	return sql
}

func TestListConditionsComposition(t *testing.T) {
	repo := newTestRepository()

	t.Run("type filter ANDed with the name-or-username search", func(t *testing.T) {
		sql := listSQL(t, repo, models.AssetListQuery{
			AssetType: models.AssetTypeMonitor,
			Search:    "bob",
		})

		assert.Contains(t, sql, `"a"."asset_type" = 'MONITOR'`)
		assert.Contains(t, sql, `"a"."name" ILIKE '%bob%'`)
		assert.Contains(t, sql, `"u"."username" ILIKE '%bob%'`)
		assert.Contains(t, sql, ` AND `)
		assert.Contains(t, sql, ` OR `)
	})

	t.Run("search alone matches name OR assignee username", func(t *testing.T) {
		sql := listSQL(t, repo, models.AssetListQuery{Search: "alice"})

		assert.Contains(t, sql, `"a"."name" ILIKE '%alice%'`)
		assert.Contains(t, sql, `"u"."username" ILIKE '%alice%'`)
		assert.Contains(t, sql, ` OR `)
		assert.NotContains(t, sql, "asset_type\" =")
	})

	t.Run("username match goes through the users join", func(t *testing.T) {
		sql := listSQL(t, repo, models.AssetListQuery{Search: "alice"})

		assert.Contains(t, sql, `LEFT JOIN "users" AS "u" ON ("a"."assigned_to" = "u"."id")`)
	})
}

func TestListConditionsEscapeSearchMetacharacters(t *testing.T) {
	repo := newTestRepository()

	t.Run("underscore matches literally", func(t *testing.T) {
		sql := listSQL(t, repo, models.AssetListQuery{Search: "_"})

		assert.Contains(t, sql, `ILIKE '%\_%'`)
	})

	t.Run("percent matches literally", func(t *testing.T) {
		sql := listSQL(t, repo, models.AssetListQuery{Search: "100%"})

		assert.Contains(t, sql, `ILIKE '%100\%%'`)
	})

	t.Run("backslash matches literally", func(t *testing.T) {
		sql := listSQL(t, repo, models.AssetListQuery{Search: `C:\drivers`})

		assert.Contains(t, sql, `ILIKE '%C:\\drivers%'`)
	})
}

func TestEscapeSearchTerm(t *testing.T) {
	assert.Equal(t, `plain`, escapeSearchTerm("plain"))
	assert.Equal(t, `100\%`, escapeSearchTerm("100%"))
	assert.Equal(t, `a\_b`, escapeSearchTerm("a_b"))
	assert.Equal(t, `\\\%\_`, escapeSearchTerm(`\%_`))
}
