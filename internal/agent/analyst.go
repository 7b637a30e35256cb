package agent

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// maxResultRows caps how many rows of a query result are fed back to the
// model for narration.
const maxResultRows = 200

// Analyst answers one natural-language question per Ask call: the model
// writes a SQLite SELECT against the materialized table, the analyst
// executes it, and the model narrates the result in Spanish. No retry:
// a malformed or failed round becomes the error the caller shows as the
// assistant's answer.
type Analyst struct {
	db     *sql.DB
	llm    LLM
	logger *zap.Logger
}

// NewAnalyst binds an analyst to a materialized store and a provider.
func NewAnalyst(db *sql.DB, llm LLM, logger *zap.Logger) *Analyst {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyst{db: db, llm: llm, logger: logger}
}

// Ask runs one question-answer round.
func (a *Analyst) Ask(ctx context.Context, question string) (string, error) {
	raw, err := a.llm.Generate(ctx, systemPrompt+"\n"+sqlInstructions, question)
	if err != nil {
		return "", fmt.Errorf("query generation failed: %w", err)
	}

	query, err := extractQuery(raw)
	if err != nil {
		return "", err
	}
	a.logger.Debug("analyst query", zap.String("sql", query))

	results, err := a.runQuery(ctx, query)
	if err != nil {
		return "", fmt.Errorf("query execution failed: %w", err)
	}

	narratePrompt := fmt.Sprintf(
		"Pregunta del usuario:\n%s\n\nConsulta SQL ejecutada:\n%s\n\nResultados:\n%s",
		question, query, results)
	answer, err := a.llm.Generate(ctx, systemPrompt+"\n"+narrateInstructions, narratePrompt)
	if err != nil {
		return "", fmt.Errorf("narration failed: %w", err)
	}
	return answer, nil
}

// extractQuery strips markdown fences and enforces the SELECT-only
// contract before anything touches the database.
func extractQuery(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	q = strings.TrimPrefix(q, "```sql")
	q = strings.TrimPrefix(q, "```")
	q = strings.TrimSuffix(strings.TrimSpace(q), "```")
	q = strings.TrimSpace(q)
	q = strings.TrimSuffix(q, ";")

	if q == "" {
		return "", fmt.Errorf("model produced no SQL")
	}
	if strings.Contains(q, ";") {
		return "", fmt.Errorf("model produced multiple statements")
	}
	first := strings.ToUpper(strings.Fields(q)[0])
	if first != "SELECT" && first != "WITH" {
		return "", fmt.Errorf("model produced a non-SELECT statement (%s)", first)
	}
	return q, nil
}

// runQuery executes the SELECT and renders the rows as a pipe-separated
// block the narration prompt can quote.
func (a *Analyst) runQuery(ctx context.Context, query string) (string, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(strings.Join(cols, " | "))
	b.WriteString("\n")

	values := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	count := 0
	for rows.Next() {
		if count >= maxResultRows {
			fmt.Fprintf(&b, "... (truncado a %d filas)\n", maxResultRows)
			break
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", err
		}
		fields := make([]string, len(values))
		for i, v := range values {
			switch val := v.(type) {
			case nil:
				fields[i] = ""
			case []byte:
				fields[i] = string(val)
			default:
				fields[i] = fmt.Sprintf("%v", val)
			}
		}
		b.WriteString(strings.Join(fields, " | "))
		b.WriteString("\n")
		count++
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if count == 0 {
		b.WriteString("(sin resultados)\n")
	}
	return b.String(), nil
}
