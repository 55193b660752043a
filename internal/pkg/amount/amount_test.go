package amount

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"zero", "0", "0", nil},
		{"positive", "1100", "1100", nil},
		{"negative", "-5", "-5", nil},
		{"explicit plus", "+7", "7", nil},
		{"max", "170141183460469231731687303715884105727", "170141183460469231731687303715884105727", nil},
		{"min", "-170141183460469231731687303715884105728", "-170141183460469231731687303715884105728", nil},
		{"above max", "170141183460469231731687303715884105728", "", ErrOverflow},
		{"below min", "-170141183460469231731687303715884105729", "", ErrOverflow},
		{"empty", "", "", ErrSyntax},
		{"fraction", "1.5", "", ErrSyntax},
		{"hex", "0x10", "", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestArithmeticOverflow(t *testing.T) {
	_, err := Max().Add(New(1))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Min().Sub(New(1))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Max().Mul(New(2))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Min().Neg()
	assert.ErrorIs(t, err, ErrOverflow)

	sum, err := Max().Add(Min())
	require.NoError(t, err)
	assert.Equal(t, "-1", sum.String())
}

func TestZeroValue(t *testing.T) {
	var z Int
	assert.True(t, z.IsZero())
	assert.Equal(t, "0", z.String())
	assert.True(t, z.Equal(New(0)))
	assert.True(t, z.Equal(MustParse("-0")))

	n, ok := z.Int64()
	assert.True(t, ok)
	assert.Zero(t, n)
}

func TestImmutability(t *testing.T) {
	a := New(10)
	b := a.Big()
	b.SetInt64(99)
	assert.Equal(t, "10", a.String())

	sum, err := a.Add(New(5))
	require.NoError(t, err)
	assert.Equal(t, "10", a.String())
	assert.Equal(t, "15", sum.String())
}

func TestJSON(t *testing.T) {
	type payload struct {
		Amount Int `json:"amount"`
	}

	out, err := json.Marshal(payload{Amount: MustParse("123456789012345678901234567890")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"123456789012345678901234567890"}`, string(out))

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"string", `{"amount":"42"}`, "42", false},
		{"number", `{"amount":42}`, "42", false},
		{"negative number", `{"amount":-3}`, "-3", false},
		{"null", `{"amount":null}`, "0", false},
		{"float", `{"amount":4.2}`, "", true},
		{"garbage string", `{"amount":"abc"}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := json.Unmarshal([]byte(tt.in), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Amount.String())
		})
	}
}

func TestCmpAndSign(t *testing.T) {
	assert.Equal(t, -1, New(-1).Sign())
	assert.Equal(t, 1, New(3).Sign())
	assert.Equal(t, -1, New(2).Cmp(New(3)))
	assert.Equal(t, 1, Max().Cmp(Min()))
	assert.Equal(t, 0, MustParse("500").Cmp(New(500)))
}
