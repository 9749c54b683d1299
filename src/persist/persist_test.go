package persist

import (
	"bytes"
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lifeterm/src/universe"
)

func newGrid(t *testing.T, height int, width int) *universe.Grid {
	t.Helper()
	g, err := universe.NewGrid(height, width)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func randomGrid(t *testing.T, height int, width int, seed int64) *universe.Grid {
	g := newGrid(t, height, width)
	rnd := rand.New(rand.NewSource(seed))
	g.Walk(func(row int, col int, _ bool) {
		_ = g.Set(row, col, rnd.Intn(2) == 1)
	})
	return g
}

func TestEncode(t *testing.T) {
	g := newGrid(t, 2, 3)
	_ = g.Set(0, 0, true)
	_ = g.Set(1, 2, true)
	var b bytes.Buffer
	if err := Encode(&b, g); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), "#--\n--#\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	dims := [][2]int{{1, 1}, {3, 7}, {24, 80}, {50, 2}}
	for i, d := range dims {
		g := randomGrid(t, d[0], d[1], int64(i))
		path := filepath.Join(t.TempDir(), "grid.txt")
		if err := Save(path, g); err != nil {
			t.Fatalf("Save: %v", err)
		}
		loaded, err := Load(path, d[0], d[1])
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !loaded.Equal(g) {
			t.Fatalf("%v x %v grid did not round trip", d[1], d[0])
		}
	}
}

func TestDecodeLenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"short lines", "#\n-#\n", []string{"#---", "-#--", "----"}},
		{"foreign characters", "#x#O\n*###\n. #-\n", []string{"#-#-", "-###", "--#-"}},
		{"long lines", "-----#\n####\n", []string{"----", "####", "----"}},
		{"extra lines", "#---\n-#--\n--#-\n---#\n####\n", []string{"#---", "-#--", "--#-"}},
		{"no final newline", "#\n##", []string{"#---", "##--", "----"}},
		{"crlf", "##\r\n#\r\n", []string{"##--", "#---", "----"}},
		{"empty", "", []string{"----", "----", "----"}},
		{"blank lines", "\n\n#", []string{"----", "----", "#---"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, 3, 4)
			if err := Decode(strings.NewReader(tt.input), g); err != nil {
				t.Fatalf("Decode: %v", err)
			}
			var b bytes.Buffer
			_ = Encode(&b, g)
			if got := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n"); strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeKeepsUnreadRows(t *testing.T) {
	g := newGrid(t, 3, 2)
	_ = g.Set(0, 1, true)
	_ = g.Set(2, 0, true)
	if err := Decode(strings.NewReader("#-\n"), g); err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	_ = Encode(&b, g)
	if got, want := b.String(), "#-\n--\n#-\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeLongLine(t *testing.T) {
	g := newGrid(t, 2, 3)
	line := strings.Repeat("#", 200000)
	if err := Decode(strings.NewReader(line+"\n-#\n"), g); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var b bytes.Buffer
	_ = Encode(&b, g)
	if got, want := b.String(), "###\n-#-\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	g, err := Load(path, 3, 3)
	if g != nil {
		t.Fatalf("Load returned a grid for a missing file")
	}
	var fe *FileError
	if !errors.As(err, &fe) || fe.Op != "load" || fe.Path != path {
		t.Fatalf("got %v, want a load FileError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("FileError does not unwrap to ErrNotExist: %v", err)
	}
}

func TestLoadIntoFailureKeepsGrid(t *testing.T) {
	g := newGrid(t, 2, 2)
	_ = g.Set(1, 1, true)
	before := g.Clone()
	if err := LoadInto(filepath.Join(t.TempDir(), "nope"), g); err == nil {
		t.Fatalf("LoadInto succeeded on a missing file")
	}
	if !g.Equal(before) {
		t.Fatalf("failed load changed the grid")
	}
}

func TestLoadInvalidDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.txt")
	if err := os.WriteFile(path, []byte("#\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, 0, 3); !errors.Is(err, universe.ErrInvalidDimensions) {
		t.Fatalf("got %v, want ErrInvalidDimensions", err)
	}
}

func TestSaveUnwritable(t *testing.T) {
	g := newGrid(t, 2, 2)
	_ = g.Set(0, 0, true)
	before := g.Clone()
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "grid.txt")
	err := Save(path, g)
	var fe *FileError
	if !errors.As(err, &fe) || fe.Op != "save" {
		t.Fatalf("got %v, want a save FileError", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error does not name the file: %v", err)
	}
	if !g.Equal(before) {
		t.Fatalf("failed save changed the grid")
	}
}

func TestLoadMismatchedDimensions(t *testing.T) {
	src := randomGrid(t, 4, 6, 7)
	path := filepath.Join(t.TempDir(), "g.txt")
	if err := Save(path, src); err != nil {
		t.Fatal(err)
	}
	small, err := Load(path, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			want, _ := src.Get(r, c)
			if got, _ := small.Get(r, c); got != want {
				t.Fatalf("truncated cell %v,%v: got %v, want %v", r, c, got, want)
			}
		}
	}
	big, err := Load(path, 6, 8)
	if err != nil {
		t.Fatal(err)
	}
	if big.LiveCells() != src.LiveCells() {
		t.Fatalf("padding revived cells: %v vs %v", big.LiveCells(), src.LiveCells())
	}
}
