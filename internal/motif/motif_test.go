package motif

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCountOverlapping(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     int
	}{
		{"overlapping homopolymer", "AAAA", "AA", 3},
		{"no match", "ACGT", "TT", 0},
		{"single match", "ATGAAATAA", "TAA", 1},
		{"needle longer than haystack", "AC", "ACGT", 0},
		{"empty needle", "ACGT", "", 0},
		{"full match", "ACGT", "ACGT", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountOverlapping(tt.haystack, tt.needle); got != tt.want {
				t.Errorf("CountOverlapping(%q, %q) = %d, want %d",
					tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

func TestCountRepeatWindows(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		unitLen  int
		mult     int
		want     int
	}{
		{"exact triple", "ACGTACGTACGT", 4, 3, 1},
		{"homopolymer overlapping", "AAAAA", 2, 2, 2},
		{"single-base runs", "AAAA", 1, 3, 2},
		{"no repeat", "ACGTACGA", 4, 2, 0},
		{"window longer than sequence", "ACGT", 4, 2, 0},
		{"zero unit length", "ACGT", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountRepeatWindows(tt.haystack, tt.unitLen, tt.mult)
			if got != tt.want {
				t.Errorf("CountRepeatWindows(%q, %d, %d) = %d, want %d",
					tt.haystack, tt.unitLen, tt.mult, got, tt.want)
			}
		})
	}
}

func TestExclusionSetCountAll(t *testing.T) {
	set := ExclusionSet{"AA", "GGG"}
	// AAAA: 3 overlapping AA. GGGG: 2 overlapping GGG.
	if got := set.CountAll("AAAAGGGG"); got != 5 {
		t.Errorf("CountAll = %d, want 5", got)
	}
	if got := ExclusionSet(nil).CountAll("AAAA"); got != 0 {
		t.Errorf("empty set CountAll = %d, want 0", got)
	}
}

func TestLoadExclusions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.txt")
	content := "# restriction sites\nGAATTC;ggatcc\n\naagctt\nGAATTC\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadExclusions(path)
	if err != nil {
		t.Fatalf("LoadExclusions: %v", err)
	}

	want := []string{"AAGCTT", "GAATTC", "GGATCC"}
	if len(set) != len(want) {
		t.Fatalf("set = %v, want %v", set, want)
	}
	for i := range want {
		if set[i] != want[i] {
			t.Errorf("set[%d] = %s, want %s", i, set[i], want[i])
		}
	}
}

func TestLoadExclusionsMissingFile(t *testing.T) {
	set, err := LoadExclusions(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("missing file: unexpected error %v", err)
	}
	if len(set) != 0 {
		t.Errorf("missing file: set = %v, want empty", set)
	}
}

func TestLoadRepeatSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repeats.txt")
	content := "# homopolymer and dimer runs\n1:8;2:4\n3:3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadRepeatSpec(path)
	if err != nil {
		t.Fatalf("LoadRepeatSpec: %v", err)
	}

	want := RepeatSpec{1: 8, 2: 4, 3: 3}
	if len(spec) != len(want) {
		t.Fatalf("spec = %v, want %v", spec, want)
	}
	for k, v := range want {
		if spec[k] != v {
			t.Errorf("spec[%d] = %d, want %d", k, spec[k], v)
		}
	}
}

func TestLoadRepeatSpecErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing colon", "4"},
		{"zero unit length", "0:3"},
		{"negative multiplicity", "4:-1"},
		{"non-numeric", "a:b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "repeats.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadRepeatSpec(path); err == nil {
				t.Errorf("LoadRepeatSpec(%q): want error, got nil", tt.content)
			}
		})
	}
}

func TestLoadRepeatSpecMissingFile(t *testing.T) {
	spec, err := LoadRepeatSpec(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("missing file: unexpected error %v", err)
	}
	if len(spec) != 0 {
		t.Errorf("missing file: spec = %v, want empty", spec)
	}
}
