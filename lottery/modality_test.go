package lottery

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestModalityValidate(t *testing.T) {
	valid := testModality()

	tests := []struct {
		name    string
		mutate  func(m *Modality)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(m *Modality) {},
		},
		{
			name:    "missing code",
			mutate:  func(m *Modality) { m.Code = "" },
			wantErr: true,
		},
		{
			name:    "zero range",
			mutate:  func(m *Modality) { m.NumberRange = 0 },
			wantErr: true,
		},
		{
			name:    "min above max",
			mutate:  func(m *Modality) { m.MinGameSize = 11 },
			wantErr: true,
		},
		{
			name:    "max above range",
			mutate:  func(m *Modality) { m.MaxGameSize = 61 },
			wantErr: true,
		},
		{
			name:    "empty pricing",
			mutate:  func(m *Modality) { m.Pricing = nil },
			wantErr: true,
		},
		{
			name: "no price for minimum size",
			mutate: func(m *Modality) {
				m.Pricing = map[int]decimal.Decimal{7: decimal.RequireFromString("35.00")}
			},
			wantErr: true,
		},
		{
			name: "priced size outside bounds",
			mutate: func(m *Modality) {
				m.Pricing[11] = decimal.RequireFromString("2000.00")
			},
			wantErr: true,
		},
		{
			name: "non-positive price",
			mutate: func(m *Modality) {
				m.Pricing[6] = decimal.Zero
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			m.Pricing = make(map[int]decimal.Decimal, len(valid.Pricing))
			for size, price := range valid.Pricing {
				m.Pricing[size] = price
			}
			tt.mutate(&m)

			err := m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestModalitySizesDescending(t *testing.T) {
	m := testModality()
	want := []int{10, 9, 8, 7, 6}
	if got := m.Sizes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sizes() = %v, want %v", got, want)
	}
}

func TestModalityCheapestPrice(t *testing.T) {
	m := testModality()
	want := decimal.RequireFromString("5.00")
	if got := m.CheapestPrice(); !got.Equal(want) {
		t.Errorf("CheapestPrice() = %s, want %s", got, want)
	}
}

func TestModalitySupportsSize(t *testing.T) {
	m := testModality()
	if !m.SupportsSize(6) {
		t.Error("SupportsSize(6) = false, want true")
	}
	if m.SupportsSize(11) {
		t.Error("SupportsSize(11) = true, want false")
	}
}
