package importer

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOFXParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/statement.ofx")
	require.NoError(t, err)

	p := &OFXParser{Now: fixedClock}
	txns, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "2024-02-01", txns[0].Date.String())
	assert.True(t, txns[0].Amount.Equal(dec("-20.00")))
	assert.Equal(t, "Coffee", txns[0].Description)
	assert.Equal(t, "ofx:20240201-1", txns[0].SourceLine)

	// NAME and MEMO merged.
	assert.Equal(t, "ACME PAYROLL Invoice 1042", txns[1].Description)
	assert.True(t, txns[1].Amount.Equal(dec("3500.00")))
}

func TestOFXParser_NotOFX(t *testing.T) {
	p := &OFXParser{Now: fixedClock}
	_, err := p.Parse(strings.NewReader("01/02/2024,-20.00,Coffee,100.00\n"))
	require.Error(t, err)
}
