// Package agent materializes the enriched section table into an embedded
// SQLite database and answers natural-language questions about it through
// an LLM-generated SQL round trip.
package agent

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"votelens/internal/dataset"
)

// Materialize opens (or creates) the SQLite database at path and rebuilds
// the secciones table from the enriched dataset, geometry excluded. The
// table is dropped and re-inserted wholesale: it is a disposable
// projection of the in-memory table, never the source of truth.
func Materialize(path string, table *dataset.Table) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}

	if err := rebuild(db, table); err != nil {
		db.Close()
		return nil, err
	}

	// From here on the store is a read model. SQLite rejects any write
	// on this connection, including CTE-prefixed ones the statement
	// guard cannot see.
	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set query_only: %w", err)
	}
	return db, nil
}

func rebuild(db *sql.DB, table *dataset.Table) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin materialization: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + TableName); err != nil {
		return fmt.Errorf("failed to drop stale table: %w", err)
	}

	schema := `CREATE TABLE ` + TableName + ` (
		seccion TEXT PRIMARY KEY,
		partido_dominante TEXT,
		pct_voto_morena REAL,
		pct_voto_oposicion REAL,
		tasa_participacion_promedio REAL,
		competitividad REAL,
		indice_competitividad REAL,
		porc_jovenes REAL,
		porc_adultos_mayores REAL,
		porc_poblacion_migrante REAL,
		GRAPROES REAL,
		indice_digitalizacion REAL,
		porc_hogares_jefa_mujer REAL,
		tasa_desocupacion REAL,
		porc_sin_servicios_salud REAL,
		perfil_descriptivo TEXT
	)`
	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO ` + TableName + ` VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range table.Sections {
		s := &table.Sections[i]
		if _, err := stmt.Exec(
			s.ID, s.PartidoDominante, s.PctVotoMorena, s.PctVotoOposicion,
			s.TasaParticipacion, s.Competitividad, s.IndiceCompetitividad,
			s.PorcJovenes, s.PorcAdultosMayores, s.PorcPoblacionMigrante,
			s.Escolaridad, s.IndiceDigitalizacion, s.PorcHogaresJefaMujer,
			s.TasaDesocupacion, s.PorcSinServiciosSalud, s.Perfil,
		); err != nil {
			return fmt.Errorf("failed to insert section %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit materialization: %w", err)
	}
	return nil
}
