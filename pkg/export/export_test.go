package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"lcstats/pkg/models"
)

func sampleResults() models.ResultSet {
	return models.ResultSet{
		{
			RollNumber:      "21CS001",
			ProfileLink:     "https://leetcode.com/alice123/",
			SubmissionStats: models.SubmissionStats{Total: 10, Easy: 5, Medium: 3, Hard: 2},
			Username:        "alice123",
			Status:          models.LookupOK,
		},
		{
			RollNumber:  "21,CS \"002\"",
			ProfileLink: "https://leetcode.com/ghost",
			Username:    "ghost",
			Status:      models.LookupNotFound,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	data, err := EncodeCSV(sampleResults())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Roll Number,LeetCode Profile,Total Submissions,Easy,Medium,Hard", lines[0])
	assert.Equal(t, "21CS001,https://leetcode.com/alice123/,10,5,3,2", lines[1])
	assert.Equal(t, `"21,CS ""002""",https://leetcode.com/ghost,0,0,0,0`, lines[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	data, err := EncodeCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(Header, ",")+"\n", string(data))
}

func TestCSVRoundTrip(t *testing.T) {
	results := sampleResults()

	data, err := EncodeCSV(results)
	require.NoError(t, err)

	parsed, err := ReadCSV(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, parsed, len(results))

	for i := range results {
		assert.Equal(t, results[i].Record(), parsed[i].Record())
	}
}

func TestCSVRoundTripLineBreaks(t *testing.T) {
	results := models.ResultSet{{RollNumber: "a\r\nb", ProfileLink: "x\ny"}}

	data, err := EncodeCSV(results)
	require.NoError(t, err)

	parsed, err := ReadCSV(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "a\nb", parsed[0].RollNumber)
	assert.Equal(t, "x\ny", parsed[0].ProfileLink)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		isHdr bool
	}{
		{"empty", "", true},
		{"wrong header", "Roll,Profile,Total,Easy,Medium,Hard\n", true},
		{"short record", strings.Join(Header, ",") + "\nR1,link,1\n", false},
		{"non-numeric count", strings.Join(Header, ",") + "\nR1,link,one,0,0,0\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.isHdr {
				assert.ErrorIs(t, err, ErrInvalidHeader)
			}
		})
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleResults()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"21CS001", "https://leetcode.com/alice123/", "10", "5", "3", "2"}, rows[1])
	assert.Equal(t, sampleResults()[1].Record(), rows[2])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("json")
	assert.Error(t, err)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
	assert.Equal(t, "leetcode_results.xlsx", FormatXLSX.FileName(""))
	assert.Equal(t, "class-a.csv", FormatCSV.FileName("class-a.xlsx"))
}

func TestWriteDispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleResults()))
	assert.True(t, strings.HasPrefix(buf.String(), "Roll Number,"))

	assert.Error(t, Write(&buf, Format("pdf"), nil))
}
