package teams

import "testing"

func TestAbbreviation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"exact", "Kansas City Chiefs", "KC", true},
		{"surrounding whitespace", "  Green Bay Packers ", "GB", true},
		{"numeric nickname", "San Francisco 49ers", "SF", true},
		{"summary row", "League Total", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Abbreviation(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Abbreviation(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAbbreviationFromNickname(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"nickname", "Chiefs", "KC", true},
		{"numeric nickname", "49ers", "SF", true},
		{"full name does not resolve", "Kansas City Chiefs", "", false},
		{"summary row", "Average", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AbbreviationFromNickname(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("AbbreviationFromNickname(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCount(t *testing.T) {
	if Count() != 32 {
		t.Errorf("Count() = %d, want 32", Count())
	}
}

func TestNicknamesAreUnique(t *testing.T) {
	// Every full name must map to a distinct nickname, or the derived
	// nickname table would silently drop teams.
	if len(nicknameToAbbr) != len(fullNameToAbbr) {
		t.Errorf("derived %d nicknames from %d teams", len(nicknameToAbbr), len(fullNameToAbbr))
	}
}
