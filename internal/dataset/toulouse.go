package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/perceptionworks/vanish/internal/geom"
)

// Toulouse dataset images share fixed pixel dimensions.
const (
	toulouseWidth  = 1920
	toulouseHeight = 1080
)

// toulouseAnnotation is the sidecar .txt format: segment endpoint quadruples
// (x1, y1, x2, y2) grouped by vanishing point.
type toulouseAnnotation struct {
	Segments [][][4]float64 `json:"segments"`
}

// LoadToulouse loads the Toulouse vanishing point dataset from a directory.
//
// Every .jpg in the directory must have a sidecar .txt file of the same base
// name holding the JSON segment annotation. Ground truth vanishing points
// are derived per group as the centroid of all pairwise finite segment
// intersections; groups without a finite centroid contribute segments but no
// vanishing point. Images are taken in lexical filename order, so repeated
// loads see the same indexing.
func LoadToulouse(dir string) (*Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory: %w", err)
	}

	var (
		paths    []string
		vps      [][]geom.Point
		segments [][][]geom.Segment
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jpg") {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), ".jpg")
		annPath := filepath.Join(dir, base+".txt")
		data, err := os.ReadFile(annPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read annotation for %s: %w", entry.Name(), err)
		}
		var ann toulouseAnnotation
		if err := json.Unmarshal(data, &ann); err != nil {
			return nil, fmt.Errorf("failed to parse annotation %s: %w", annPath, err)
		}

		var imageVPs []geom.Point
		imageSegments := make([][]geom.Segment, 0, len(ann.Segments))
		for _, group := range ann.Segments {
			segs := make([]geom.Segment, 0, len(group))
			for _, q := range group {
				segs = append(segs, geom.Seg(q[0], q[1], q[2], q[3]))
			}
			imageSegments = append(imageSegments, segs)
			if c, ok := geom.Centroid(geom.Intersections(segs)); ok {
				imageVPs = append(imageVPs, c)
			}
		}

		paths = append(paths, filepath.Join(dir, entry.Name()))
		vps = append(vps, imageVPs)
		segments = append(segments, imageSegments)
	}

	return New(paths, toulouseWidth, toulouseHeight, vps, segments), nil
}
