package patent

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Claim is one numbered patent claim.
type Claim struct {
	Num  string `json:"num"`
	Text string `json:"text"`
}

// UnmarshalJSON accepts the claim number as either a string or a number.
func (c *Claim) UnmarshalJSON(data []byte) error {
	var raw struct {
		Num  json.RawMessage `json:"num"`
		Text string          `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	num, err := claimNumber(raw.Num)
	if err != nil {
		return err
	}
	c.Num = num
	c.Text = raw.Text
	return nil
}

func claimNumber(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// Claims is the stored shape of a patent's claims.
type Claims = TextOrList[Claim]

// NormalizeClaims turns any stored shape into a list:
//
//   - a structured list is returned as is;
//   - raw text holding a JSON list of claims is decoded;
//   - any other raw text becomes a single claim with an empty number;
//   - empty input yields an empty, non-nil list.
func NormalizeClaims(v Claims) []Claim {
	if !v.IsText() {
		if items := v.Items(); len(items) > 0 {
			out := make([]Claim, len(items))
			copy(out, items)
			return out
		}
		return []Claim{}
	}

	text := strings.TrimSpace(v.Text())
	if text == "" {
		return []Claim{}
	}
	if strings.HasPrefix(text, "[") {
		var decoded []Claim
		if err := json.Unmarshal([]byte(text), &decoded); err == nil {
			if decoded == nil {
				decoded = []Claim{}
			}
			return decoded
		}
	}
	return []Claim{{Num: "", Text: text}}
}

//Personal.AI order the ending
