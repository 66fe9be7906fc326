package iou

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestAddressFromCondition(t *testing.T) {
	data := []byte{1, 2, 3, 4}

	cond := NewCondition("vault", "state", data)
	if err := cond.Validate(); err != nil {
		t.Fatalf("valid condition rejected: %+v", err)
	}

	ext, typ, got, err := cond.Parse()
	if err != nil {
		t.Fatalf("cannot parse condition: %+v", err)
	}
	if ext != "vault" || typ != "state" || !bytes.Equal(got, data) {
		t.Fatalf("condition roundtrip failed: %s/%s/%X", ext, typ, got)
	}

	addr := cond.Address()
	if err := addr.Validate(); err != nil {
		t.Fatalf("derived address is invalid: %+v", err)
	}
	if len(addr) != AddressLength {
		t.Fatalf("want %d bytes, got %d", AddressLength, len(addr))
	}
}

func TestAddressDerivationIsDeterministic(t *testing.T) {
	a := NewCondition("vault", "state", []byte("asset")).Address()
	b := NewCondition("vault", "state", []byte("asset")).Address()
	if !a.Equals(b) {
		t.Fatal("same seed data must derive the same address")
	}

	c := NewCondition("vault", "state", []byte("other")).Address()
	if a.Equals(c) {
		t.Fatal("different seed data must derive different addresses")
	}

	d := NewCondition("vault", "ticket", []byte("asset")).Address()
	if a.Equals(d) {
		t.Fatal("different condition type must derive different addresses")
	}
}

func TestInvalidConditions(t *testing.T) {
	cases := map[string]Condition{
		"nil":             nil,
		"empty":           {},
		"missing data":    Condition("vault/state/"),
		"single section":  Condition("vault"),
		"bad characters":  NewCondition("va&lt", "state", []byte{1}),
		"too long prefix": NewCondition("waytoolongname", "state", []byte{1}),
	}
	for testName, cond := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := cond.Validate(); err == nil {
				t.Fatalf("condition %q must not validate", cond)
			}
		})
	}
}

func TestAddressJSONRoundtrip(t *testing.T) {
	addr := NewCondition("token", "cust", []byte("wallet")).Address()

	raw, err := json.Marshal(addr)
	if err != nil {
		t.Fatalf("cannot marshal: %+v", err)
	}

	var got Address
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("cannot unmarshal %s: %+v", raw, err)
	}
	if !addr.Equals(got) {
		t.Fatalf("address changed during JSON roundtrip: %s != %s", addr, got)
	}
}

func TestAddressUnmarshalJSONFormats(t *testing.T) {
	cond := NewCondition("vault", "state", []byte("seed"))

	cases := map[string]struct {
		json    string
		want    Address
		wantErr bool
	}{
		"default hex": {
			json: `"` + cond.Address().String() + `"`,
			want: cond.Address(),
		},
		"explicit hex": {
			json: `"hex:` + cond.Address().String() + `"`,
			want: cond.Address(),
		},
		"condition format": {
			json: `"cond:vault/state/73656564"`,
			want: cond.Address(),
		},
		"zero value": {
			json: `""`,
			want: nil,
		},
		"unknown format": {
			json:    `"base92:abcd"`,
			wantErr: true,
		},
		"wrong length": {
			json:    `"1234"`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Address
			err := json.Unmarshal([]byte(tc.json), &got)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("cannot unmarshal: %+v", err)
			}
			if !got.Equals(tc.want) {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}
