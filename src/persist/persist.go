/*
	Package persist saves and loads grids in the plain text format:
	one line per row, '#' for an alive cell and '-' for a dead one, no header.
	The reader must know the dimensions up front. Decoding is lenient:
	any character other than '#' and any missing column is a dead cell.
*/
package persist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"lifeterm/src/universe"
)

const (
	AliveMarker = '#'
	DeadMarker  = '-'
)

//FileError records a failed save or load and the file that caused it
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

//Encode writes the grid rows to w
func Encode(w io.Writer, g *universe.Grid) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, g.Width()+1)
	line[g.Width()] = '\n'
	for row := 0; row < g.Height(); row++ {
		for col, alive := range g.Row(row) {
			if alive {
				line[col] = AliveMarker
			} else {
				line[col] = DeadMarker
			}
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

//Decode reads up to g.Height() lines from r into g
//rows past the end of the input keep their state, lines past g.Height() are ignored
func Decode(r io.Reader, g *universe.Grid) error {
	br := bufio.NewReader(r)
	for row := 0; row < g.Height(); row++ {
		line, err := br.ReadString('\n')
		if len(line) == 0 && err == io.EOF {
			break
		}
		if err != nil && err != io.EOF {
			return err
		}
		for col := 0; col < g.Width(); col++ {
			alive := col < len(line) && line[col] == AliveMarker
			if err := g.Set(row, col, alive); err != nil {
				return err
			}
		}
		if err == io.EOF {
			break
		}
	}
	return nil
}

//Save writes the grid to the file at path, creating or truncating it
func Save(path string, g *universe.Grid) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &FileError{"save", path, unwrapPathError(err)}
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = &FileError{"save", path, unwrapPathError(cErr)}
		}
	}()
	if err = Encode(f, g); err != nil {
		return &FileError{"save", path, unwrapPathError(err)}
	}
	return nil
}

//Load creates a height x width grid and fills it from the file at path
func Load(path string, height int, width int) (*universe.Grid, error) {
	g, err := universe.NewGrid(height, width)
	if err != nil {
		return nil, err
	}
	if err := LoadInto(path, g); err != nil {
		return nil, err
	}
	return g, nil
}

//LoadInto fills g from the file at path
//the file is decoded into a copy first, on failure g is left untouched
func LoadInto(path string, g *universe.Grid) error {
	f, err := os.Open(path)
	if err != nil {
		return &FileError{"load", path, unwrapPathError(err)}
	}
	defer f.Close()

	tmp := g.Clone()
	if err := Decode(f, tmp); err != nil {
		return &FileError{"load", path, unwrapPathError(err)}
	}
	if err := g.CopyFrom(tmp); err != nil {
		return fmt.Errorf("load %v: %w", path, err)
	}
	return nil
}

//unwrapPathError drops the os.PathError layer, FileError already carries the path
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
