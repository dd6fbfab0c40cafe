// Package feature parses covariance files into the sparse feature vectors consumed by libsvm.
//
// A feature file is a sequence of whitespace separated decimal numbers with no header. Each
// number becomes one node of the vector; its index is its 1-based position in the file. Every
// vector ends with a sentinel node (index -1), which is how libsvm marks the end of a sample.
package feature

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SentinelIndex is the index of the node that terminates a vector.
const SentinelIndex = -1

// ErrSampleRead is returned when a feature file cannot be opened or read. It is not fatal to a
// run: only that one sample is skipped.
var ErrSampleRead = errors.New("could not read sample")

// Node is a single (index, value) pair of a sparse vector.
type Node struct {
	Index int
	Value float64
}

// Sentinel is the node that terminates every vector.
var Sentinel = Node{Index: SentinelIndex}

// Vector is an index ordered sparse vector terminated by Sentinel.
type Vector []Node

// Features returns the nodes of the vector without the sentinel.
func (v Vector) Features() []Node {
	if n := len(v); n > 0 && v[n-1].Index == SentinelIndex {
		return v[:n-1]
	}
	return v
}

// Dimension is the number of features in the vector.
func (v Vector) Dimension() int {
	return len(v.Features())
}

// WriteLibSVM writes the vector as a LIBSVM compatible line for the given label. The sentinel is
// implicit in the text format and is not written.
func (v Vector) WriteLibSVM(writer io.Writer, label int) (int, error) {
	line := strconv.Itoa(label)
	for _, n := range v.Features() {
		line += " " + strconv.Itoa(n.Index) + ":" + strconv.FormatFloat(n.Value, 'g', -1, 64)
	}
	return writer.Write([]byte(line + "\n"))
}

// Parser turns a feature file into a vector.
type Parser interface {
	Parse(path string) (Vector, error)
}

// FileParser parses feature files from the local file system.
type FileParser struct{}

// Parse implements Parser.
func (FileParser) Parse(path string) (Vector, error) {
	return Parse(path)
}

// Parse reads the feature file at path. See ParseReader.
func Parse(path string) (Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrSampleRead, "%s: %v", path, err)
	}
	defer f.Close()

	v, err := ParseReader(f)
	if err != nil {
		return nil, errors.Wrapf(ErrSampleRead, "%s: %v", path, err)
	}
	return v, nil
}

// ParseReader reads whitespace separated numbers from r in order and assigns them the indices
// 1, 2, ... The sentinel is always appended, so an empty input gives a vector holding only the
// sentinel. Reading stops at the first token that is not a finite decimal number; the numbers
// read up to that point make up the vector.
func ParseReader(r io.Reader) (Vector, error) {
	var v Vector
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		value, ok := decimal(scanner.Text())
		if !ok {
			break
		}
		v = append(v, Node{Index: len(v) + 1, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return append(v, Sentinel), nil
}

// decimal parses a finite decimal number. NaN, infinities and hexadecimal floats are not
// decimals, even though strconv accepts them.
func decimal(token string) (float64, bool) {
	if strings.ContainsAny(token, "xX") {
		return 0, false
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
