package delimited

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/models"
	"github.com/ajitpratap0/tabula/pkg/table"
)

func TestEncode(t *testing.T) {
	tbl := table.New([]string{"id", "note", "score"}, [][]models.Value{
		{models.Int(1), models.String("plain"), models.Float(10)},
		{models.Int(2), models.String("has, comma"), models.Float(2.5)},
		{models.Int(3), models.String(`say "hi"`), models.String("")},
	})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, tbl, Options{}))

	want := "id,note,score\n" +
		"1,plain,10.0\n" +
		"2,\"has, comma\",2.5\n" +
		"3,\"say \"\"hi\"\"\",\n"
	assert.Equal(t, want, buf.String())
}

func TestDecode(t *testing.T) {
	in := "id,note\n1,\"multi\nline\"\n2,\"a,b\"\n"

	tbl, err := Decode(strings.NewReader(in), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "note"}, tbl.Headers())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "multi\nline", tbl.Row(0)[1].String())
	assert.Equal(t, "a,b", tbl.Row(1)[1].String())
	assert.Equal(t, models.KindString, tbl.Row(0)[0].Kind())
}

func TestDecode_HeaderOnly(t *testing.T) {
	tbl, err := Decode(strings.NewReader("a,b\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Headers())
	assert.Equal(t, 0, tbl.Len())
	assert.NotNil(t, tbl.Rows())
}

func TestDecode_StripsByteOrderMark(t *testing.T) {
	tbl, err := Decode(strings.NewReader("\xEF\xBB\xBFid,name\n1,x\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "id", tbl.Headers()[0])
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"ragged short", "a,b\n1\n"},
		{"ragged long", "a,b\n1,2,3\n"},
		{"bare quote", "a,b\n1,x\"y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in), Options{})
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeFormat))
		})
	}
}

func TestRoundTrip_CustomComma(t *testing.T) {
	tbl := table.FromStrings([]string{"a", "b"}, [][]string{{"x;y", "z"}, {"1", "2"}})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, tbl, Options{Comma: ';'}))
	assert.Equal(t, "a;b\n\"x;y\";z\n1;2\n", buf.String())

	back, err := Decode(&buf, Options{Comma: ';'})
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back))
}

func TestRoundTrip_SingleEmptyField(t *testing.T) {
	tests := []struct {
		name string
		tbl  *table.Table
		want string
	}{
		{
			"empty cell",
			table.FromStrings([]string{"a"}, [][]string{{"x"}, {""}, {"y"}}),
			"a\nx\n\"\"\ny\n",
		},
		{
			"empty header",
			table.FromStrings([]string{""}, [][]string{{"1"}, {""}}),
			"\"\"\n1\n\"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, tt.tbl, Options{}))
			assert.Equal(t, tt.want, buf.String())

			back, err := Decode(&buf, Options{})
			require.NoError(t, err)
			assert.True(t, tt.tbl.Equal(back), "got %v", back.Rows())
		})
	}
}

func TestDecode_KeepsQuotedCarriageReturn(t *testing.T) {
	tbl, err := Decode(strings.NewReader("a,b\r\n\"a\r\nb\",c\r\n\"x\"\"\r\ny\",\"\r\"\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Headers())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "a\r\nb", tbl.Row(0)[0].String())
	assert.Equal(t, "c", tbl.Row(0)[1].String())
	assert.Equal(t, "x\"\r\ny", tbl.Row(1)[0].String())
	assert.Equal(t, "\r", tbl.Row(1)[1].String())
}

func TestRoundTrip_LineBreaks(t *testing.T) {
	tbl := table.FromStrings([]string{"note", "n"}, [][]string{
		{"a\r\nb", "1"},
		{"lf\nonly", "2"},
		{"cr\ronly", "3"},
		{"trailing\r\n", "4"},
	})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, tbl, Options{}))

	back, err := Decode(&buf, Options{})
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back), "got %q", back.Rows())
}
