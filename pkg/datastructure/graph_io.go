package datastructure

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

type intersectionRecord struct {
	ID    string   `json:"id"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Roads []string `json:"roads"`
}

type topologyFile struct {
	Intersections []intersectionRecord `json:"intersections"`
}

func isCompressed(filename string) bool {
	return strings.HasSuffix(filename, ".bz2")
}

// writeJSONFile. json encode v into filename, bzip2 compressed when the name ends with .bz2
func writeJSONFile(filename string, v interface{}) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		w  io.Writer = f
		bz *bzip2.Writer
	)
	if isCompressed(filename) {
		bz, err = bzip2.NewWriter(f, &bzip2.WriterConfig{})
		if err != nil {
			return err
		}
		w = bz
	}

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if bz != nil {
		return bz.Close()
	}
	return nil
}

func readJSONFile(filename string, v interface{}) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if isCompressed(filename) {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return err
		}
		defer bz.Close()
		r = bz
	}

	return json.NewDecoder(bufio.NewReader(r)).Decode(v)
}

func (t *Topology) WriteTopology(filename string) error {
	out := topologyFile{Intersections: make([]intersectionRecord, 0, len(t.intersections))}
	for _, in := range t.intersections {
		out.Intersections = append(out.Intersections, intersectionRecord{
			ID:    in.id,
			X:     in.position.X,
			Y:     in.position.Y,
			Roads: in.roads,
		})
	}
	return writeJSONFile(filename, out)
}

func ReadTopology(filename string) (*Topology, error) {
	var in topologyFile
	if err := readJSONFile(filename, &in); err != nil {
		return nil, fmt.Errorf("read topology %s: %w", filename, err)
	}
	if len(in.Intersections) == 0 {
		return nil, fmt.Errorf("topology %s has no intersections", filename)
	}

	intersections := make([]Intersection, 0, len(in.Intersections))
	for _, rec := range in.Intersections {
		intersections = append(intersections, NewIntersection(rec.ID, rec.X, rec.Y, rec.Roads))
	}
	return NewTopology(intersections)
}

func WriteRoadLengths(filename string, lengths map[string]float64) error {
	return writeJSONFile(filename, lengths)
}

// ReadRoadLengths. a missing file is an empty table, every road then uses the default length.
func ReadRoadLengths(filename string) (*RoadLengths, error) {
	lengths := make(map[string]float64)
	err := readJSONFile(filename, &lengths)
	if errors.Is(err, os.ErrNotExist) {
		return NewRoadLengths(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read road lengths %s: %w", filename, err)
	}
	return NewRoadLengths(lengths), nil
}
