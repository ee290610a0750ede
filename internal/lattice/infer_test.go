package lattice

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/agentic-research/regroup/api"
	"github.com/agentic-research/regroup/internal/config"
	"github.com/agentic-research/regroup/internal/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func peopleConfig() *api.Config {
	return &api.Config{
		Types: []api.TypeSpec{
			{Name: "record", Properties: []api.Property{
				{Name: "id", From: "ID #"},
				{Name: "first_name", From: "First Name"},
				{Name: "last_name", From: "Last Name"},
			}},
			{Name: "car", Properties: []api.Property{
				{Name: "car_id", From: "Car ID #"},
				{Name: "car_make", From: "Car Make"},
			}},
			{Name: "house", Properties: []api.Property{
				{Name: "house_id", From: "House ID #"},
				{Name: "house_street", From: "House Street"},
			}},
		},
		Groups: []api.GroupSpec{
			{Name: "records", By: []string{"ID #"}, Type: "record", Groups: []api.GroupSpec{
				{Name: "cars", By: []string{"Car ID #"}, Type: "car"},
				{Name: "houses", By: []string{"House ID #"}, Type: "house"},
			}},
		},
	}
}

func TestInferFromRecords_People(t *testing.T) {
	inf := &Inferrer{Config: DefaultInferConfig()}

	cfg, err := inf.InferFromRecords(peopleRows(t))
	require.NoError(t, err)
	assert.Equal(t, peopleConfig(), cfg)

	// The proposal is a working specification.
	g, err := config.NewGraph(cfg, peopleRows(t))
	require.NoError(t, err)
	records := g.Data("records")
	require.Len(t, records, 3)
	cars := field.Get(records[0], "cars")
	assert.Len(t, cars, 2)
}

func TestInferFromRecords_LooseFields(t *testing.T) {
	rows := []any{
		map[string]any{"order_id": "1", "customer": "ann", "sku": "a", "qty": "2", "total": "10"},
		map[string]any{"order_id": "1", "customer": "ann", "sku": "b", "qty": "1", "total": "10"},
		map[string]any{"order_id": "2", "customer": "bob", "sku": "a", "qty": "5", "total": "10"},
	}
	inf := &Inferrer{Config: InferConfig{RootName: "row"}}

	cfg, err := inf.InferFromRecords(rows)
	require.NoError(t, err)
	assert.Equal(t, &api.Config{
		Types: []api.TypeSpec{
			{Name: "order", Properties: []api.Property{
				{Name: "customer", From: "customer"},
				{Name: "order_id", From: "order_id"},
				{Name: "total", From: "total"},
			}},
		},
		Groups: []api.GroupSpec{{Name: "orders", By: []string{"order_id"}, Type: "order"}},
	}, cfg)
}

func TestInferFromRecords_Empty(t *testing.T) {
	inf := &Inferrer{Config: DefaultInferConfig()}
	cfg, err := inf.InferFromRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, &api.Config{}, cfg)
}

func TestInferFromRecords_NoKeys(t *testing.T) {
	inf := &Inferrer{Config: DefaultInferConfig()}
	_, err := inf.InferFromRecords([]any{
		map[string]any{"a": "1"},
		map[string]any{"a": "1"},
	})
	// a single constant field determines itself only: it has no entity.
	require.Error(t, err)
}

func TestInferFromSQLite_Synthetic(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "people.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE results ("ID #" TEXT, "First Name" TEXT, "Last Name" TEXT,
		"Car ID #" TEXT, "Car Make" TEXT, "House ID #" TEXT, "House Street" TEXT)`)
	require.NoError(t, err)
	for _, r := range peopleRows(t) {
		var vals []any
		m := r.(interface {
			Get(string) (any, bool)
		})
		for _, col := range []string{"ID #", "First Name", "Last Name", "Car ID #", "Car Make", "House ID #", "House Street"} {
			v, _ := m.Get(col)
			vals = append(vals, v)
		}
		_, err = db.Exec("INSERT INTO results VALUES (?, ?, ?, ?, ?, ?, ?)", vals...)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	inf := &Inferrer{Config: DefaultInferConfig()}
	cfg, err := inf.InferFromSQLite(dbPath, "")
	require.NoError(t, err)
	assert.Equal(t, peopleConfig(), cfg)

	_, err = inf.InferFromSQLite(filepath.Join(t.TempDir(), "missing.db"), "")
	require.Error(t, err)
}

func TestReservoirSample(t *testing.T) {
	records := make([]any, 100)
	for i := range records {
		records[i] = i
	}

	sample := reservoirSample(records, 10, 42)
	assert.Len(t, sample, 10)
	assert.Equal(t, sample, reservoirSample(records, 10, 42), "same seed, same sample")

	assert.Len(t, reservoirSample(records[:5], 10, 0), 5)
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "car", typeName("Car ID #", "record"))
	assert.Equal(t, "record", typeName("ID #", "record"))
	assert.Equal(t, "customer", typeName("customerId", "record"))
	assert.Equal(t, "first_name", propertyName("First Name"))
	assert.Equal(t, "field", propertyName("#"))
	assert.True(t, isIDLike("orderID"))
	assert.False(t, isIDLike("valid"))
	assert.Equal(t, "categories", plural("category"))
	assert.Equal(t, "days", plural("day"))
	assert.Equal(t, "addresses", plural("address"))
}
