package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader reads and enriches GeoJSON section datasets. Results are
// memoized per cleaned path for the process lifetime; identical paths
// never re-read the file or recompute the derived fields. Concurrent
// first loads of the same path are deduplicated.
type Loader struct {
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]*Table
	group singleflight.Group
}

// NewLoader creates a Loader. A nil logger is replaced with a no-op one.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger, cache: make(map[string]*Table)}
}

// Load returns the enriched table for path, reading and enriching it on
// first use. Failures are returned to the caller and NOT cached, so a
// later call can succeed once the file is fixed.
func (l *Loader) Load(path string) (*Table, error) {
	key := filepath.Clean(path)

	l.mu.Lock()
	if t, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return t, nil
	}
	l.mu.Unlock()

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		t, err := loadAndEnrich(key)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[key] = t
		l.mu.Unlock()
		l.logger.Info("dataset loaded",
			zap.String("path", key),
			zap.Int("sections", t.Len()),
			zap.Int("profiles", len(t.Profiles())))
		return t, nil
	})
	if err != nil {
		l.logger.Warn("dataset load failed", zap.String("path", key), zap.Error(err))
		return nil, err
	}
	return v.(*Table), nil
}

func loadAndEnrich(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("dataset %s contains no features", path)
	}

	sections := make([]Section, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil {
			return nil, fmt.Errorf("feature %d has no geometry", i)
		}
		if err := checkGeographic(f.Geometry); err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}

		s := Section{
			ID:                    sectionID(f.Properties["seccion"]),
			Geometry:              f.Geometry,
			PartidoDominante:      f.Properties.MustString("partido_dominante", ""),
			PctVotoMorena:         f.Properties.MustFloat64("pct_voto_morena", 0),
			PctVotoOposicion:      f.Properties.MustFloat64("pct_voto_oposicion", 0),
			TasaParticipacion:     f.Properties.MustFloat64("tasa_participacion_promedio", 0),
			Competitividad:        f.Properties.MustFloat64("competitividad", 0),
			PorcJovenes:           f.Properties.MustFloat64("porc_jovenes", 0),
			PorcAdultosMayores:    f.Properties.MustFloat64("porc_adultos_mayores", 0),
			PorcPoblacionMigrante: f.Properties.MustFloat64("porc_poblacion_migrante", 0),
			Escolaridad:           f.Properties.MustFloat64("GRAPROES", 0),
			IndiceDigitalizacion:  f.Properties.MustFloat64("indice_digitalizacion", 0),
			PorcHogaresJefaMujer:  f.Properties.MustFloat64("porc_hogares_jefa_mujer", 0),
			TasaDesocupacion:      f.Properties.MustFloat64("tasa_desocupacion", 0),
			PorcSinServiciosSalud: f.Properties.MustFloat64("porc_sin_servicios_salud", 0),
		}
		if s.ID == "" {
			return nil, fmt.Errorf("feature %d has no seccion identifier", i)
		}

		s.IndiceCompetitividad = 100 - s.Competitividad
		centroid, _ := planar.CentroidArea(f.Geometry)
		s.Centroid = centroid
		sections = append(sections, s)
	}

	th := ComputeThresholds(sections)
	for i := range sections {
		sections[i].Perfil = ClassifyProfile(&sections[i], th)
	}

	return &Table{Sections: sections, Thresholds: th, path: path}, nil
}

// checkGeographic rejects geometries whose coordinates fall outside
// lon/lat range. The pipeline delivers EPSG:4326; a projected file here
// means the export step was skipped, and mis-rendering it silently is
// worse than failing the load.
func checkGeographic(g orb.Geometry) error {
	b := g.Bound()
	if b.Min[0] < -180 || b.Max[0] > 180 || b.Min[1] < -90 || b.Max[1] > 90 {
		return fmt.Errorf("coordinates out of EPSG:4326 range (bound %v)", b)
	}
	return nil
}

// sectionID normalizes the seccion property, which arrives as a JSON
// number in some exports and a string in others.
func sectionID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case int:
		return strconv.Itoa(id)
	}
	return ""
}
