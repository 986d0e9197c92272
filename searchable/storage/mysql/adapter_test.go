package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoting(t *testing.T) {
	c := Wrap(nil)
	assert.Equal(t, "`users`", c.QuoteIdentifier("users"))
	assert.Equal(t, "`we``ird`", c.QuoteIdentifier("we`ird"))

	assert.Equal(t, `'%o\'neil%'`, c.QuoteLiteral("%o'neil%"))
	assert.Equal(t, `'c:\\temp'`, c.QuoteLiteral(`c:\temp`))
	assert.Equal(t, `'a\0b\n\"c\"'`, c.QuoteLiteral("a\x00b\n\"c\""))

	name, err := Wrap(nil).DriverName()
	assert.Error(t, err, "no handle")
	assert.Empty(t, name)
}

func TestConnectRejectsBadDSN(t *testing.T) {
	_, err := New("not a dsn").Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse mysql dsn")
}
