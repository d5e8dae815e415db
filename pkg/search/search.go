// Package search maintains an optional full-text index over incident
// descriptions and causes. The live feed stays unfiltered; search is a
// separate read path.
package search

import (
	"os"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

type Engine struct {
	idx bleve.Index
}

type incidentDoc struct {
	Description string `json:"description"`
	Cause       string `json:"cause"`
}

func buildMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("description", text)
	doc.AddFieldMappingsAt("cause", text)
	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Open opens (or creates) the index at path. An empty path builds an
// in-memory index, used by tests.
func Open(path string) (*Engine, error) {
	if path == "" {
		idx, err := bleve.NewMemOnly(buildMapping())
		if err != nil {
			return nil, err
		}
		return &Engine{idx: idx}, nil
	}
	if _, err := os.Stat(path); err == nil {
		idx, err := bleve.Open(path)
		if err != nil {
			return nil, err
		}
		return &Engine{idx: idx}, nil
	}
	idx, err := bleve.New(path, buildMapping())
	if err != nil {
		return nil, err
	}
	return &Engine{idx: idx}, nil
}

// Index adds one incident to the index.
func (e *Engine) Index(id uint, description, cause string) error {
	return e.idx.Index(strconv.FormatUint(uint64(id), 10), incidentDoc{Description: description, Cause: cause})
}

// Search returns the ids of incidents matching the query, best first.
func (e *Engine) Search(q string, limit int) ([]uint, error) {
	if limit <= 0 {
		limit = 50
	}
	req := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(q), limit, 0, false)
	res, err := e.idx.Search(req)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, err := strconv.ParseUint(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func (e *Engine) Close() error { return e.idx.Close() }
