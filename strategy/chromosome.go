// Package strategy decodes chromosomes into walks over a maze grid, scores them,
// and reconstructs the walked path for rendering.
//
// Two encodings exist. The occupancy encoding carries one gene per blank cell and
// selects a set of cells. The step encoding consumes genes in pairs, each pair
// naming a cardinal move. Every chromosome of any length is decodable; decoding
// never fails.
package strategy

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/mazega/maze"
)

// Chromosome is a gene sequence; any non-zero gene reads as 1
type Chromosome []uint8

// Alphabet is the gene alphabet used for random initialisation and mutation
var Alphabet = []uint8{0, 1}

// Encoding names a chromosome family
type Encoding uint8

const (
	EncodingOccupancy Encoding = iota
	EncodingSteps
)

func (e Encoding) String() string {
	switch e {
	case EncodingOccupancy:
		return "occupancy"
	case EncodingSteps:
		return "steps"
	default:
		return "unknown"
	}
}

// Move decodes one gene pair: (0,0) up, (0,1) left, (1,0) right, (1,1) down
func Move(a, b uint8) maze.Point {
	switch {
	case a == 0 && b == 0:
		return maze.Up
	case a == 0:
		return maze.Left
	case b == 0:
		return maze.Right
	default:
		return maze.Down
	}
}

// ErrLengthMismatch is wrapped by LengthMismatchError
var ErrLengthMismatch = errors.New("chromosome length mismatch")

// ErrInvalidGene is wrapped by ParseChromosome for characters other than 0 and 1
var ErrInvalidGene = errors.New("invalid gene")

// LengthMismatchError reports crossover parents of different lengths
type LengthMismatchError struct {
	Left, Right int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("chromosome length mismatch: %d != %d", e.Left, e.Right)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// String renders genes as a compact 0/1 string
func (c Chromosome) String() string {
	b := make([]byte, len(c))
	for i, g := range c {
		if g != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// ParseChromosome reads a 0/1 string as produced by String
func ParseChromosome(s string) (Chromosome, error) {
	c := make(Chromosome, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			c[i] = 1
		default:
			return nil, fmt.Errorf("%w %d: character %q", ErrInvalidGene, i, s[i])
		}
	}
	return c, nil
}
