package words

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// LoadError reports the document that made a load fail
type LoadError struct {
	Document string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Document, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load fetches every document of the layout concurrently and builds the
// store once all of them have been parsed. The first failure cancels the
// remaining fetches and is returned as a *LoadError; no partial store is
// ever returned. Load does not retry.
func Load(ctx context.Context, src Source, layout Layout, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	docs := make([]string, 0, len(layout.Tiers)+1)
	for _, t := range layout.Tiers {
		docs = append(docs, DocumentName(t))
	}
	if layout.NewWords != nil {
		docs = append(docs, layout.NewWords.Document)
	}

	results := make([][]WordRecord, len(docs))
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, doc := range docs {
		p.Go(func(ctx context.Context) error {
			data, err := src.Fetch(ctx, doc)
			if err != nil {
				return &LoadError{Document: doc, Err: err}
			}
			recs, err := ParseDocument(data)
			if err != nil {
				return &LoadError{Document: doc, Err: err}
			}
			results[i] = recs
			logger.Debug("Loaded word list", zap.String("document", doc), zap.Int("words", len(recs)))
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		logger.Error("Word list load failed", zap.Error(err))
		return nil, err
	}

	lists := make(map[Tier][]WordRecord, len(layout.Tiers))
	for i, t := range layout.Tiers {
		lists[t] = results[i]
	}

	var newWords []WordRecord
	if layout.NewWords != nil {
		newWords = results[len(results)-1]
	}

	store, err := NewStore(layout, lists, newWords)
	if err != nil {
		return nil, &LoadError{Document: "store", Err: err}
	}

	logger.Info("Word store loaded", zap.Int("tiers", len(layout.Tiers)), zap.Int("words", store.Count()))
	return store, nil
}
