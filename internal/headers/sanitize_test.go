package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Age", "Age"},
		{"Vehicles (1 ton or less) available", "Vehicles_1_ton_or_less_available"},
		{"Housing unit/GQ person serial number", "Housing_unitGQ_person_serial_number"},
		{"Recoded detailed Hispanic origin", "Recoded_detailed_Hispanic_origin"},
		{"Self-care difficulty", "Self-care_difficulty"},
		{"Gross rent as a percentage of household income past 12 months", "Gross_rent_as_a_percentage_of_household_income_past_12_months"},
		{"Flag:  (a) & (b)", "Flag_a_b"},
		{"already_snake_case", "already_snake_case"},
		{"tabs\tand\n newlines", "tabs_and_newlines"},
		{"Nativité", "Nativité"},
		{"Age\u00a0group", "Age_group"},
		{"Age\u2003 \u3000group", "Age_group"},
		{"line\u0085break\u2028here", "line_break_here"},
		{"vertical\vtab\x1fsep", "vertical_tab_sep"},
		{"$%^&*", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}
