package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource reads one JSON array per collection from a directory,
// e.g. data/properties.json. Missing files load as empty collections.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Load(ctx context.Context) (*Dataset, error) {
	var c Collections
	targets := []struct {
		name string
		dest any
	}{
		{CollectionProperties, &c.Properties},
		{CollectionPlaces, &c.Places},
		{CollectionActivities, &c.Activities},
		{CollectionEvents, &c.Events},
		{CollectionBestOf, &c.BestOfLists},
		{CollectionMonthly, &c.MonthlyGuides},
		{CollectionLifestyle, &c.LifestyleScenarios},
		{CollectionBlogPosts, &c.BlogPosts},
		{CollectionTestimonials, &c.Testimonials},
	}
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.readCollection(t.name, t.dest); err != nil {
			return nil, err
		}
	}
	return NewDataset(c)
}

func (s *FileSource) readCollection(name string, dest any) error {
	path := filepath.Join(s.dir, name+".json")
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
