package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCookie(t *testing.T) {
	tests := []struct {
		name    string
		typ     CookieType
		wantErr error
		wantID  string
	}{
		{name: "chocolate chip", typ: CookieChocolateChip, wantID: "1"},
		{name: "sugar", typ: CookieSugar, wantID: "1"},
		{name: "snickerdoodle", typ: CookieSnickerdoodle, wantID: "1"},
		{name: "unknown type rejected", typ: "Fortune", wantErr: ErrInvalidType},
		{name: "empty type rejected", typ: "", wantErr: ErrInvalidType},
		{name: "case must match exactly", typ: "sugar", wantErr: ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := NewSequence()
			c, err := NewCookie(seq, tt.typ)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Cookie{}, c)
				// The failed construction must not consume an identifier.
				assert.Equal(t, "1", seq.NextID())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.typ, c.Type())
			assert.Equal(t, tt.wantID, c.ID())
		})
	}
}

func TestNewCookieIDsAreDistinct(t *testing.T) {
	seq := NewSequence()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		c, err := NewCookie(seq, CookieTypes()[i%len(cookieTypes)])
		require.NoError(t, err)
		assert.False(t, seen[c.ID()], "id %s reused", c.ID())
		seen[c.ID()] = true
	}
}

func TestParseCookieType(t *testing.T) {
	tests := []struct {
		in      string
		want    CookieType
		wantErr error
	}{
		{in: "Chocolate Chip", want: CookieChocolateChip},
		{in: "chocolate chip", want: CookieChocolateChip},
		{in: "chocolate-chip", want: CookieChocolateChip},
		{in: "CHOCOLATE_CHIP", want: CookieChocolateChip},
		{in: "  oatmeal   raisin ", want: CookieOatmealRaisin},
		{in: "peanut-butter", want: CookiePeanutButter},
		{in: "Sugar", want: CookieSugar},
		{in: "snickerdoodle", want: CookieSnickerdoodle},
		{in: "macaron", wantErr: ErrInvalidType},
		{in: "", wantErr: ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCookieType(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCookieTypesReturnsCopy(t *testing.T) {
	got := CookieTypes()
	require.Len(t, got, 5)
	got[0] = "Fortune"
	assert.Equal(t, CookieChocolateChip, CookieTypes()[0])
	assert.False(t, CookieType("Fortune").Valid())
}

func TestCookieMarshalJSON(t *testing.T) {
	c, err := NewCookie(NewSequence(), CookiePeanutButter)
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","type":"Peanut Butter"}`, string(data))
	assert.Equal(t, "Peanut Butter#1", c.String())
}
