package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/models"
)

func sampleTable() *Table {
	return FromStrings([]string{"id", "name"}, [][]string{
		{"1", "ada"},
		{"2", "grace"},
		{"3", "linus"},
		{"2", "ken"},
	})
}

func firstColumn(t *testing.T, tbl *Table) []string {
	t.Helper()
	values, err := tbl.ColumnValues(Index(0))
	require.NoError(t, err)
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func TestEmpty(t *testing.T) {
	tbl := Empty()
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 0, tbl.Width())
	assert.NotNil(t, tbl.Headers())
	assert.NotNil(t, tbl.Rows())
	assert.NoError(t, tbl.Validate())
}

func TestNew_WrapsWithoutCopy(t *testing.T) {
	headers := []string{"a"}
	rows := [][]models.Value{{models.String("x")}}
	tbl := New(headers, rows)

	rows[0][0] = models.String("y")
	assert.Equal(t, "y", tbl.Row(0)[0].String())
}

func TestValidate(t *testing.T) {
	tbl := New([]string{"a", "b"}, [][]models.Value{
		{models.String("1"), models.String("2")},
		{models.String("3")},
	})

	err := tbl.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeShape))

	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 1, e.Detail("row"))
}

func TestCopy_IsIndependent(t *testing.T) {
	src := sampleTable()
	cp := src.Copy()
	require.True(t, src.Equal(cp))

	require.NoError(t, src.SetColumnValues(models.Strings([]string{"9", "9", "9", "9"}), Index(0)))
	assert.Equal(t, []string{"1", "2", "3", "2"}, firstColumn(t, cp))
	assert.False(t, src.Equal(cp))
}

func TestViewRange(t *testing.T) {
	tbl := sampleTable()

	tests := []struct {
		name        string
		start, stop int
		want        []string
	}{
		{"single", 1, 2, []string{"2"}},
		{"span", 0, 3, []string{"1", "2", "3"}},
		{"stop past end", 2, 100, []string{"3", "2"}},
		{"start past end", 10, 12, []string{}},
		{"negative start", -5, 1, []string{"1"}},
		{"inverted", 3, 1, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tbl.ViewRange(tt.start, tt.stop)
			assert.Equal(t, tt.want, firstColumn(t, view.Table))
			assert.Equal(t, tbl.Headers(), view.Headers())
			assert.Same(t, tbl, view.Source())
		})
	}
}

func TestViewRow_DefaultsToSingleRow(t *testing.T) {
	tbl := sampleTable()
	for i := 0; i < tbl.Len(); i++ {
		view := tbl.ViewRow(i)
		require.Equal(t, 1, view.Len())
		assert.Equal(t, tbl.Row(i), view.Row(0))
	}
	assert.Equal(t, 0, tbl.ViewRow(tbl.Len()).Len())
}

func TestViewAliasesCopyDoesNot(t *testing.T) {
	tbl := sampleTable()
	view := tbl.ViewRange(0, 2)
	owned := tbl.CopyRange(0, 2)

	tbl.Row(0)[1] = models.String("changed")

	assert.Equal(t, "changed", view.Row(0)[1].String())
	assert.Equal(t, "ada", owned.Row(0)[1].String())

	require.NoError(t, view.SetColumnValues(models.Strings([]string{"x", "y"}), Name("name")))
	assert.Equal(t, "x", tbl.Row(0)[1].String())
	assert.Equal(t, "y", tbl.Row(1)[1].String())
	assert.Equal(t, "linus", tbl.Row(2)[1].String())
}

func TestViewOwned(t *testing.T) {
	tbl := sampleTable()
	owned := tbl.ViewRow(0).Owned()
	tbl.Row(0)[0] = models.String("99")
	assert.Equal(t, []string{"1"}, firstColumn(t, owned))
}

func TestViewKeys(t *testing.T) {
	tbl := sampleTable()

	view := tbl.ViewKeys(models.String("3"), models.String("2"))
	assert.Equal(t, []string{"2", "3", "2"}, firstColumn(t, view.Table))

	none := tbl.ViewKeys(models.Int(2))
	assert.Equal(t, 0, none.Len())

	owned := tbl.CopyKeys(models.String("1"))
	require.Equal(t, 1, owned.Len())
	tbl.Row(0)[1] = models.String("changed")
	assert.Equal(t, "ada", owned.Row(0)[1].String())

	aliased := tbl.ViewKeys(models.String("1"))
	assert.Equal(t, "changed", aliased.Row(0)[1].String())
}

func TestColumnValues(t *testing.T) {
	tbl := sampleTable()

	byName, err := tbl.ColumnValues(Name("name"))
	require.NoError(t, err)
	byIndex, err := tbl.ColumnValues(Index(1))
	require.NoError(t, err)
	assert.Equal(t, byIndex, byName)
	assert.Equal(t, "grace", byName[1].String())

	_, err = tbl.ColumnValues(Name("missing"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeColumn))

	_, err = tbl.ColumnValues(Index(2))
	assert.True(t, errors.IsType(err, errors.ErrorTypeColumn))
}

func TestColumnValues_DuplicateHeaderResolvesFirst(t *testing.T) {
	tbl := FromStrings([]string{"k", "k"}, [][]string{{"first", "second"}})
	values, err := tbl.ColumnValues(Name("k"))
	require.NoError(t, err)
	assert.Equal(t, "first", values[0].String())
}

func TestSingleValue(t *testing.T) {
	tbl := sampleTable()

	v, err := tbl.ViewRow(2).SingleValue(Name("name"))
	require.NoError(t, err)
	assert.Equal(t, "linus", v.String())

	require.NoError(t, tbl.ViewRow(2).SetSingleValue(models.String("torvalds"), Index(1)))
	assert.Equal(t, "torvalds", tbl.Row(2)[1].String())
}

func TestSingleValue_ShapeErrors(t *testing.T) {
	tbl := sampleTable()

	for name, subject := range map[string]*Table{
		"zero rows": tbl.ViewRange(0, 0).Table,
		"two rows":  tbl.ViewRange(0, 2).Table,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := subject.SingleValue(Index(0))
			assert.True(t, errors.IsType(err, errors.ErrorTypeShape))

			err = subject.SetSingleValue(models.String("x"), Index(0))
			assert.True(t, errors.IsType(err, errors.ErrorTypeShape))
		})
	}
}

func TestSetColumnValues_LengthMismatch(t *testing.T) {
	tbl := sampleTable()
	err := tbl.SetColumnValues(models.Strings([]string{"a"}), Index(0))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeShape))
	assert.Equal(t, []string{"1", "2", "3", "2"}, firstColumn(t, tbl))
}
