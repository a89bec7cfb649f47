package metrics

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/cookiejar/pkg/types"
)

func TestRecorderObserve(t *testing.T) {
	r := NewRecorder()
	j, err := types.NewJar(4)
	require.NoError(t, err)

	seq := types.NewSequence()
	for _, typ := range []types.CookieType{types.CookieSugar, types.CookieSugar, types.CookieSnickerdoodle} {
		c, err := types.NewCookie(seq, typ)
		require.NoError(t, err)
		require.NoError(t, j.Deposit(c))
		r.Deposited(c)
	}
	r.Observe(j)

	assert.Equal(t, 3.0, testutil.ToFloat64(r.size))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.capacity))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.held.WithLabelValues("Sugar")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.held.WithLabelValues("Peanut Butter")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.deposits.WithLabelValues("Sugar")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.deposits.WithLabelValues("Snickerdoodle")))
}

func TestRecorderWithdrewAndRejected(t *testing.T) {
	r := NewRecorder()
	c, err := types.NewCookie(types.NewSequence(), types.CookieOatmealRaisin)
	require.NoError(t, err)

	r.Withdrew(c, ModeNewest)
	r.Withdrew(c, ModeOldest)
	r.Withdrew(c, ModeOldest)
	r.Rejected("deposit", fmt.Errorf("wrapped: %w", types.ErrCapacityExceeded))
	r.Rejected("withdraw", types.ErrEmptyJar)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.withdrawals.WithLabelValues("Oatmeal Raisin", ModeNewest)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.withdrawals.WithLabelValues("Oatmeal Raisin", ModeOldest)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejections.WithLabelValues("deposit", "capacity_exceeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejections.WithLabelValues("withdraw", "empty")))
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{types.ErrCapacityExceeded, "capacity_exceeded"},
		{types.ErrEmptyJar, "empty"},
		{types.ErrTypeUnavailable, "type_unavailable"},
		{types.ErrInvalidType, "invalid_type"},
		{types.ErrInvalidCapacity, "invalid_capacity"},
		{types.ErrNegativeQuantity, "negative_quantity"},
		{fmt.Errorf("boom"), "other"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Reason(tt.err))
		})
	}
}

func TestWriteText(t *testing.T) {
	r := NewRecorder()
	r.Observe(types.NewDefaultJar())

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE cookiejar_jar_size gauge")
	assert.Contains(t, out, "cookiejar_jar_capacity 12")
	assert.Contains(t, out, `cookiejar_jar_cookies{type="Chocolate Chip"} 0`)
}
