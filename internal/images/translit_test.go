package images

import "testing"

func TestTransliterate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Алматы", "Almaty"},
		{"Щучинск", "Schuchinsk"},
		{"Усть-Каменогорск", "Ust-Kamenogorsk"},
		{"Paris", "Paris"},
		{"Нью-Йорк 2024", "Nyu-York 2024"},
		{"съезд", "sezd"},
	}

	for _, tc := range cases {
		if got := Transliterate(tc.in); got != tc.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
