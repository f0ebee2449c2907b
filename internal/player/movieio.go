package player

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadMovieFile reads and unmarshals a declarative movie document. The
// Movie struct's yaml tags (see movie.go) accept the same field names a
// screenplay author would write by hand.
func LoadMovieFile(path string) (Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Movie{}, fmt.Errorf("read movie file %s: %w", path, err)
	}

	var mv Movie
	if err := yaml.Unmarshal(data, &mv); err != nil {
		return Movie{}, fmt.Errorf("parse movie file %s: %w", path, err)
	}

	if mv.Sign.Width <= 0 || mv.Sign.Height <= 0 {
		return Movie{}, fmt.Errorf("movie file %s: sign width/height must be positive", path)
	}

	return mv, nil
}
