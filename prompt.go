package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pthm-cable/gridpath/grid"
)

// errNoInput is returned when stdin closes before a value is read.
var errNoInput = errors.New("no input")

// parseCoord parses "x,y".
func parseCoord(s string) (grid.Coord, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return grid.Coord{}, fmt.Errorf("coordinate %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Coord{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Coord{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	return grid.Coord{X: x, Y: y}, nil
}

// prompter reads whitespace-separated integers, re-asking on malformed input.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &prompter{in: sc, out: out}
}

// readInt asks question until an integer in [0,limit) is entered.
func (p *prompter) readInt(question string, limit int) (int, error) {
	for {
		fmt.Fprintln(p.out, question)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, err
			}
			return 0, errNoInput
		}
		v, err := strconv.Atoi(p.in.Text())
		if err != nil {
			fmt.Fprintf(p.out, "%q is not a whole number, try again.\n", p.in.Text())
			continue
		}
		if v < 0 || v >= limit {
			fmt.Fprintf(p.out, "%d is outside the world (0-%d), try again.\n", v, limit-1)
			continue
		}
		return v, nil
	}
}

// readCoord asks for the x (column) and y (row) of a named node.
func (p *prompter) readCoord(name string, g *grid.Grid) (grid.Coord, error) {
	x, err := p.readInt(fmt.Sprintf("Enter the x coordinate (column) for the %s node:", name), g.Width())
	if err != nil {
		return grid.Coord{}, err
	}
	y, err := p.readInt(fmt.Sprintf("Enter the y coordinate (row) for the %s node:", name), g.Height())
	if err != nil {
		return grid.Coord{}, err
	}
	return grid.Coord{X: x, Y: y}, nil
}
