package geotiff

import (
	"errors"
	"fmt"
	"log"
	"math"
)

// ProfilePoint is one sampled pixel along a profile path.
type ProfilePoint struct {
	X     int
	Y     int
	Value uint64
}

// Profile samples the raster along a path of pixel waypoints, one sample per
// pixel step at the raster's native resolution. Consecutive segments share
// endpoints; a pixel visited twice is reported once.
func (t *TIFF) Profile(points [][2]int) ([]ProfilePoint, error) {
	if len(points) < 2 {
		return nil, errors.New("at least two points are required to create a profile")
	}

	var profile []ProfilePoint
	visited := make(map[[2]int]struct{})

	for i := 0; i < len(points)-1; i++ {
		x1, y1 := points[i][0], points[i][1]
		x2, y2 := points[i+1][0], points[i+1][1]

		dx := float64(x2 - x1)
		dy := float64(y2 - y1)
		steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
		if steps == 0 {
			steps = 1
		}
		xInc := dx / float64(steps)
		yInc := dy / float64(steps)

		for j := 0; j <= steps; j++ {
			x := x1 + int(float64(j)*xInc)
			y := y1 + int(float64(j)*yInc)

			key := [2]int{x, y}
			if _, ok := visited[key]; ok {
				continue
			}
			visited[key] = struct{}{}

			v, err := t.ValueAt(x, y)
			if err != nil {
				log.Printf("geotiff: skipping profile pixel (%d, %d): %v", x, y, err)
				continue
			}
			profile = append(profile, ProfilePoint{X: x, Y: y, Value: v})
		}
	}

	if len(profile) == 0 {
		return nil, fmt.Errorf("no profile points fall inside the %dx%d image", t.Width(), t.Length())
	}
	return profile, nil
}
