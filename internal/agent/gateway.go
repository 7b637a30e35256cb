package agent

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"votelens/internal/dataset"
)

// Gateway hands out one Analyst per enriched table. The store is rebuilt
// when a table is first seen and the analyst is reused for every question
// after that; memoization is by table identity, so a reloaded dataset
// gets a fresh materialization. Construction failures are returned every
// time so callers settle into a steady "no agent" degraded state rather
// than crashing or retrying on their own.
type Gateway struct {
	llm    LLM
	dbPath string
	logger *zap.Logger

	mu       sync.Mutex
	analysts map[*dataset.Table]*Analyst
}

// NewGateway creates a gateway. llm may be nil when no provider is
// configured; For then fails for every table.
func NewGateway(llm LLM, dbPath string, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		llm:      llm,
		dbPath:   dbPath,
		logger:   logger,
		analysts: make(map[*dataset.Table]*Analyst),
	}
}

// For returns the analyst bound to the given table, materializing the
// store on first use.
func (g *Gateway) For(table *dataset.Table) (*Analyst, error) {
	if g.llm == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if a, ok := g.analysts[table]; ok {
		return a, nil
	}

	db, err := Materialize(g.dbPath, table)
	if err != nil {
		return nil, fmt.Errorf("failed to materialize section table: %w", err)
	}
	g.logger.Info("agent store materialized",
		zap.String("path", g.dbPath),
		zap.Int("sections", table.Len()))

	a := NewAnalyst(db, g.llm, g.logger)
	g.analysts[table] = a
	return a, nil
}
