package rules_test

import (
	"testing"

	"github.com/nairkartik/shuddhi/internal/rules"
)

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	s := rules.NewSet(rules.ProfileStandard)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "seven digits group indian style",
			in:   "1234567 rupees",
			want: "₹12,34,567",
		},
		{
			name: "three digits stay ungrouped",
			in:   "500 rs",
			want: "₹500",
		},
		{
			name: "marker before the amount",
			in:   "rs 1200",
			want: "₹1,200",
		},
		{
			name: "marker with trailing period",
			in:   "Rs. 45000",
			want: "₹45,000",
		},
		{
			name: "sentence-final period after marker kept",
			in:   "pay 500 rs.",
			want: "pay ₹500.",
		},
		{
			name: "inr marker",
			in:   "fee is 250000 INR today",
			want: "fee is ₹2,50,000 today",
		},
		{
			name: "decimal part preserved unsplit",
			in:   "1234567.89 rupees",
			want: "₹12,34,567.89",
		},
		{
			name: "existing commas are regrouped",
			in:   "1,234,567 rupees",
			want: "₹12,34,567",
		},
		{
			name: "symbol already attached",
			in:   "paid ₹1234567 cash",
			want: "paid ₹12,34,567 cash",
		},
		{
			name: "bare symbol token",
			in:   "₹ 1234567",
			want: "₹12,34,567",
		},
		{
			name: "marker with no adjacent amount",
			in:   "pay me in rupees",
			want: "pay me in rupees",
		},
		{
			name: "no currency",
			in:   "just a plain sentence",
			want: "just a plain sentence",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := s.FormatCurrency(tc.in); got != tc.want {
				t.Errorf("FormatCurrency(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
