package currency

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatter_Amount(t *testing.T) {
	f := NewFormatter("en-IN")

	require.Equal(t, "₹100", f.Amount(100))
	require.Equal(t, "₹200", f.Amount(200))
	require.Equal(t, "₹18,999", f.Amount(18999))
	require.Equal(t, "0", f.Number(0))
}

func TestNewFormatter_InvalidLocaleFallsBack(t *testing.T) {
	f := NewFormatter("not a locale!!")
	require.Equal(t, "₹8,999", f.Amount(8999))
}
