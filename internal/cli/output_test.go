package cli

import (
	"bytes"
	"errors"
	"testing"

	"rollcall/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outputFixture struct {
	ClassSessionId int64  `json:"id_aula" yaml:"id_aula"`
	Room           string `json:"sala" yaml:"sala"`
}

func TestPrintOutput(t *testing.T) {
	data := outputFixture{ClassSessionId: 101, Room: "B.204"}
	text := func() string { return "room B.204\n" }

	var b bytes.Buffer
	require.NoError(t, PrintOutput(&b, common.OutputJson, data, text))
	assert.JSONEq(t, `{"id_aula": 101, "sala": "B.204"}`, b.String())

	b.Reset()
	require.NoError(t, PrintOutput(&b, common.OutputYaml, data, text))
	assert.Equal(t, "id_aula: 101\nsala: B.204\n", b.String())

	b.Reset()
	require.NoError(t, PrintOutput(&b, common.OutputText, data, text))
	assert.Equal(t, "room B.204\n", b.String())

	b.Reset()
	require.NoError(t, PrintOutput(&b, "", data, text), "text is the default")
	assert.Equal(t, "room B.204\n", b.String())

	err := PrintOutput(&b, "xml", data, text)
	assert.True(t, errors.Is(err, ErrorInvalidInput))
}

func TestDescribeTrackerError(t *testing.T) {
	assert.Equal(t, "a newer QR code was issued for this student", DescribeTrackerError("payload_superseded"))
	assert.Equal(t, "something_new", DescribeTrackerError("something_new"))
}
