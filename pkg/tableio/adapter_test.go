package tableio

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/ajitpratap0/tabula/pkg/config"
	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/formats"
	"github.com/ajitpratap0/tabula/pkg/metrics"
	"github.com/ajitpratap0/tabula/pkg/models"
	"github.com/ajitpratap0/tabula/pkg/table"
	tu "github.com/ajitpratap0/tabula/pkg/testutil"
)

type AdapterTestSuite struct {
	suite.Suite
	dir       string
	cfg       *config.Config
	collector *metrics.Collector
	adapter   *Adapter
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterTestSuite))
}

func (s *AdapterTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.cfg = config.Default()
	s.collector = metrics.NewCollector("test")
	s.adapter = New(s.cfg, tu.TestLogger(s.T()), s.collector)
}

func (s *AdapterTestSuite) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *AdapterTestSuite) writeFixture(name, content string) string {
	p := s.path(name)
	s.Require().NoError(os.WriteFile(p, []byte(content), 0o600))
	return p
}

func (s *AdapterTestSuite) requireType(err error, errType errors.ErrorType) {
	s.Require().Error(err)
	s.True(errors.IsType(err, errType), "want %s, got %v", errType, err)
}

func (s *AdapterTestSuite) assertMetric(name, expected string) {
	s.NoError(testutil.GatherAndCompare(s.collector.Registry(), strings.NewReader(expected), name))
}

func (s *AdapterTestSuite) TestEndToEnd_DetectCoerceChunk() {
	in := s.writeFixture("scores.csv", "id,score\n1,10\n2,20\n3,30\n")

	tbl, err := s.adapter.LoadText(in)
	s.Require().NoError(err)

	s.Equal(map[int]models.ColumnType{0: models.TypeInteger, 1: models.TypeInteger},
		tbl.DetectColumnTypes().ByIndex())

	s.Require().NoError(tbl.CoerceColumnTypes(table.Coerce(table.Index(1), models.TypeFloat)))

	out := s.path("out.csv")
	s.Require().NoError(s.adapter.SaveText(tbl, out, 2))

	s.Equal("id,score\n1,10.0\n2,20.0\n", tu.ReadFile(s.T(), s.path("out_part1.csv")))
	s.Equal("id,score\n3,30.0\n", tu.ReadFile(s.T(), s.path("out_part2.csv")))
	s.NoFileExists(out)
	s.NoFileExists(s.path("out_part3.csv"))

	s.assertMetric("test_files_written_total", `
# HELP test_files_written_total Total number of files saved, counting each chunk
# TYPE test_files_written_total counter
test_files_written_total{format="text"} 2
`)
	s.assertMetric("test_rows_read_total", `
# HELP test_rows_read_total Total number of rows loaded
# TYPE test_rows_read_total counter
test_rows_read_total{format="text"} 3
`)
}

func (s *AdapterTestSuite) TestSaveText_Whole() {
	tbl := tu.ScoresTable(3)
	out := s.path("whole.csv")

	s.Require().NoError(s.adapter.SaveText(tbl, out, 0))
	s.Equal("id,score\n1,10\n2,20\n3,30\n", tu.ReadFile(s.T(), out))

	back, err := s.adapter.LoadText(out)
	s.Require().NoError(err)
	s.True(tbl.Equal(back))
}

func (s *AdapterTestSuite) TestSaveText_ChunkCounts() {
	for _, tc := range []struct {
		rows, maxRows, files int
	}{
		{5, 2, 3},
		{4, 2, 2},
		{3, 10, 1},
		{1, 1, 1},
	} {
		dir := s.T().TempDir()
		out := filepath.Join(dir, "t.csv")
		s.Require().NoError(s.adapter.SaveText(tu.ScoresTable(tc.rows), out, tc.maxRows))

		entries, err := os.ReadDir(dir)
		s.Require().NoError(err)
		s.Len(entries, tc.files, "rows=%d maxRows=%d", tc.rows, tc.maxRows)

		total := 0
		for i := 1; i <= tc.files; i++ {
			part, err := s.adapter.LoadText(filepath.Join(dir, "t_part"+strconv.Itoa(i)+".csv"))
			s.Require().NoError(err)
			s.Equal([]string{"id", "score"}, part.Headers())
			s.LessOrEqual(part.Len(), tc.maxRows)
			total += part.Len()
		}
		s.Equal(tc.rows, total)
	}
}

func (s *AdapterTestSuite) TestSaveText_ZeroRows() {
	empty := table.New([]string{"id"}, nil)

	s.Require().NoError(s.adapter.SaveText(empty, s.path("chunked.csv"), 5))
	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Empty(entries)

	s.Require().NoError(s.adapter.SaveText(empty, s.path("whole.csv"), 0))
	s.Equal("id\n", tu.ReadFile(s.T(), s.path("whole.csv")))
}

func (s *AdapterTestSuite) TestSaveText_MultiDotName() {
	s.Require().NoError(s.adapter.SaveText(tu.ScoresTable(2), s.path("a.b.csv"), 1))
	s.FileExists(s.path("a.b_part1.csv"))
	s.FileExists(s.path("a.b_part2.csv"))
}

func (s *AdapterTestSuite) TestSave_ChunkExtensions() {
	tbl := tu.ScoresTable(3)

	s.Require().NoError(s.adapter.SaveText(tbl, s.path("out.txt"), 2))
	s.FileExists(s.path("out_part1.csv"))
	s.FileExists(s.path("out_part2.csv"))
	s.NoFileExists(s.path("out_part1.txt"))

	s.Require().NoError(s.adapter.SaveText(tbl, s.path("bare"), 2))
	s.FileExists(s.path("bare_part1.csv"))
	s.FileExists(s.path("bare_part2.csv"))

	s.Require().NoError(s.adapter.SaveBinary(tbl, s.path("out.bin"), 2))
	s.FileExists(s.path("out_part1.avro"))
	s.FileExists(s.path("out_part2.avro"))
	s.NoFileExists(s.path("out_part1.bin"))

	s.Require().NoError(s.adapter.SaveBinary(tbl, s.path("noext"), 2))
	s.FileExists(s.path("noext_part1.avro"))

	part, err := s.adapter.Load(s.path("noext_part2.avro"))
	s.Require().NoError(err)
	s.Equal(1, part.Len())

	s.Require().NoError(s.adapter.SaveText(tbl, s.path("whole.txt"), 0))
	s.FileExists(s.path("whole.txt"))
}

func (s *AdapterTestSuite) TestText_CompressedByExtension() {
	tbl := tu.ScoresTable(50)
	for _, name := range []string{"t.csv.gz", "t.csv.zst", "t.csv.sz", "t.csv.s2", "t.csv.lz4", "t.csv.deflate"} {
		out := s.path(name)
		s.Require().NoError(s.adapter.SaveText(tbl, out, 0), name)

		back, err := s.adapter.LoadText(out)
		s.Require().NoError(err, name)
		s.True(tbl.Equal(back), name)
	}
}

func (s *AdapterTestSuite) TestSaveText_ConfiguredCompression() {
	s.cfg.Text.Compression = "gzip"
	out := s.path("t.csv")

	s.Require().NoError(s.adapter.SaveText(tu.ScoresTable(3), out, 2))
	s.FileExists(s.path("t_part1.csv.gz"))
	s.FileExists(s.path("t_part2.csv.gz"))

	part, err := s.adapter.LoadText(s.path("t_part2.csv.gz"))
	s.Require().NoError(err)
	s.Equal("3", part.Row(0)[0].String())
}

func (s *AdapterTestSuite) TestText_CustomComma() {
	s.cfg.Text.Comma = ";"
	in := s.writeFixture("semi.csv", "a;b\n1;x,y\n")

	tbl, err := s.adapter.LoadText(in)
	s.Require().NoError(err)
	s.Equal("x,y", tbl.Row(0)[1].String())
}

func (s *AdapterTestSuite) TestLoadText_Errors() {
	_, err := s.adapter.LoadText(s.path("missing.csv"))
	s.requireType(err, errors.ErrorTypeNotFound)

	_, err = s.adapter.LoadText(s.dir + string(os.PathSeparator) + "missing" + string(os.PathSeparator) + "x.csv")
	s.requireType(err, errors.ErrorTypeNotFound)

	_, err = s.adapter.LoadText(s.writeFixture("empty.csv", ""))
	s.requireType(err, errors.ErrorTypeFormat)

	_, err = s.adapter.LoadText(s.writeFixture("ragged.csv", "a,b\n1\n"))
	s.requireType(err, errors.ErrorTypeFormat)

	var e *errors.Error
	s.Require().True(errors.As(err, &e))
	s.Equal(s.path("ragged.csv"), e.Detail("path"))

	_, err = s.adapter.LoadText(s.writeFixture("bad.csv.gz", "not gzip at all"))
	s.requireType(err, errors.ErrorTypeFormat)

	s.assertMetric("test_errors_total", `
# HELP test_errors_total Total number of failed operations
# TYPE test_errors_total counter
test_errors_total{operation="load_text",type="format"} 3
test_errors_total{operation="load_text",type="not_found"} 2
`)
}

func (s *AdapterTestSuite) TestSave_WriteErrors() {
	missingDir := filepath.Join(s.dir, "nope", "out.csv")

	s.requireType(s.adapter.SaveText(tu.ScoresTable(2), missingDir, 0), errors.ErrorTypeWrite)
	s.requireType(s.adapter.SaveText(tu.ScoresTable(2), missingDir, 1), errors.ErrorTypeWrite)
	s.requireType(s.adapter.SaveBinary(tu.ScoresTable(2), filepath.Join(s.dir, "nope", "out.avro"), 0), errors.ErrorTypeWrite)
	s.requireType(s.adapter.SavePlain(tu.ScoresTable(2), filepath.Join(s.dir, "nope", "out.txt")), errors.ErrorTypeWrite)

	s.cfg.Text.Compression = "brotli"
	s.requireType(s.adapter.SaveText(tu.ScoresTable(2), s.path("x.csv"), 0), errors.ErrorTypeWrite)
}

func (s *AdapterTestSuite) TestBinary_RoundTripKinds() {
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("", -5*3600))
	tbl := table.New([]string{"i", "f", "t", "s"}, [][]models.Value{
		{models.Int(1), models.Float(10), models.Time(at), models.String("x")},
		{models.Int(2), models.Float(math.Inf(1)), models.LocalTime(at), models.String("")},
		{models.Int(3), models.Float(-0.25), models.Time(at.UTC()), models.String("z")},
	})

	for _, codec := range []string{"null", "deflate", "snappy"} {
		s.cfg.Binary.Codec = codec
		out := s.path("t-" + codec + ".avro")

		s.Require().NoError(s.adapter.SaveBinary(tbl, out, 0), codec)
		back, err := s.adapter.LoadBinary(out)
		s.Require().NoError(err, codec)
		s.True(tbl.Equal(back), codec)
		s.Equal("10.0", back.Row(0)[1].String())
		s.Equal("2024-05-06T07:08:09-05:00", back.Row(0)[2].String())
		s.Equal("2024-05-06T07:08:09", back.Row(1)[2].String())
	}
}

func (s *AdapterTestSuite) TestBinary_Chunked() {
	out := s.path("t.avro")
	s.Require().NoError(s.adapter.SaveBinary(tu.ScoresTable(5), out, 2))

	var rows []string
	for _, name := range []string{"t_part1.avro", "t_part2.avro", "t_part3.avro"} {
		part, err := s.adapter.LoadBinary(s.path(name))
		s.Require().NoError(err)
		values, err := part.ColumnValues(table.Name("id"))
		s.Require().NoError(err)
		for _, v := range values {
			rows = append(rows, v.String())
		}
	}
	s.Equal([]string{"1", "2", "3", "4", "5"}, rows)
	s.NoFileExists(s.path("t_part4.avro"))
}

func (s *AdapterTestSuite) TestLoadBinary_Errors() {
	_, err := s.adapter.LoadBinary(s.path("missing.avro"))
	s.requireType(err, errors.ErrorTypeNotFound)

	_, err = s.adapter.LoadBinary(s.writeFixture("text.avro", "id,score\n1,10\n"))
	s.requireType(err, errors.ErrorTypeFormat)
}

func (s *AdapterTestSuite) TestSavePlain() {
	tbl := tu.ScoresTable(2)
	s.Require().NoError(tbl.CoerceColumnTypes(table.Coerce(table.Name("score"), models.TypeFloat)))

	out := s.path("dump.txt")
	s.Require().NoError(s.adapter.SavePlain(tbl, out))
	s.Equal("id\tscore\n1\t10.0\n2\t20.0\n", tu.ReadFile(s.T(), out))
}

func (s *AdapterTestSuite) TestLoadAndSaveDispatch() {
	tbl := tu.ScoresTable(2)

	s.Require().NoError(s.adapter.Save(tbl, s.path("d.avro"), formats.Binary, 0))
	s.Require().NoError(s.adapter.Save(tbl, s.path("d.csv"), formats.Text, 0))
	s.Require().NoError(s.adapter.Save(tbl, s.path("d.txt"), formats.Plain, 0))

	for _, name := range []string{"d.avro", "d.csv"} {
		back, err := s.adapter.Load(s.path(name))
		s.Require().NoError(err, name)
		s.True(tbl.Equal(back), name)
	}

	back, err := s.adapter.Load(s.writeFixture("delimited.txt", "id,score\n1,10\n2,20\n"))
	s.Require().NoError(err)
	s.True(tbl.Equal(back))

	_, err = s.adapter.Load(s.path("d.txt"))
	s.Require().NoError(err)
}

func TestPackageLevelFunctions(t *testing.T) {
	dir := t.TempDir()
	tbl := tu.ScoresTable(3)

	tu.RequireNoError(t, SaveText(tbl, filepath.Join(dir, "a.csv"), 0), "save text")
	tu.RequireNoError(t, SaveBinary(tbl, filepath.Join(dir, "a.avro"), 0), "save binary")
	tu.RequireNoError(t, SavePlain(tbl, filepath.Join(dir, "a.txt")), "save plain")

	text, err := LoadText(filepath.Join(dir, "a.csv"))
	tu.RequireNoError(t, err, "load text")
	binary, err := LoadBinary(filepath.Join(dir, "a.avro"))
	tu.RequireNoError(t, err, "load binary")

	if !text.Equal(tbl) || !binary.Equal(tbl) {
		t.Fatal("round trip through package-level functions changed the table")
	}
}
