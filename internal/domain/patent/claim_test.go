package patent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaim_UnmarshalNumericNum(t *testing.T) {
	var claims []Claim
	require.NoError(t, json.Unmarshal([]byte(`[{"num":1,"text":"a"},{"num":"2","text":"b"},{"text":"c"}]`), &claims))

	assert.Equal(t, []Claim{{Num: "1", Text: "a"}, {Num: "2", Text: "b"}, {Num: "", Text: "c"}}, claims)
}

func TestNormalizeClaims(t *testing.T) {
	cases := []struct {
		name string
		in   Claims
		want []Claim
	}{
		{"zero value", Claims{}, []Claim{}},
		{"structured", Structured([]Claim{{Num: "1", Text: "A method"}}), []Claim{{Num: "1", Text: "A method"}}},
		{"structured empty", Structured[Claim](nil), []Claim{}},
		{"blank text", RawText[Claim]("   "), []Claim{}},
		{"text holding json list", RawText[Claim](`[{"num":"01","text":"A system"}]`), []Claim{{Num: "01", Text: "A system"}}},
		{"plain text", RawText[Claim]("1. A widget comprising a lever."), []Claim{{Num: "", Text: "1. A widget comprising a lever."}}},
		{"broken json stays text", RawText[Claim]("[not json"), []Claim{{Num: "", Text: "[not json"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeClaims(tc.in)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeClaims_DoesNotAliasStorage(t *testing.T) {
	src := []Claim{{Num: "1", Text: "x"}}
	got := NormalizeClaims(Structured(src))
	got[0].Text = "changed"
	assert.Equal(t, "x", src[0].Text)
}

//Personal.AI order the ending
