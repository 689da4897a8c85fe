package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-trade-dashboard/internal/logger"
	"go-trade-dashboard/internal/model"
)

// ------------------- Service -------------------

// Service owns the dataset cache for one data file and applies the
// key-indicator restriction to every load.
type Service struct {
	DataFile      string
	KeyIndicators []string

	cache   *DatasetCache
	tracker *Tracker
}

func NewService(dataFile string, keyIndicators []string) *Service {
	return &Service{
		DataFile:      dataFile,
		KeyIndicators: keyIndicators,
		cache:         NewDatasetCache(),
		tracker:       NewTracker(),
	}
}

// Tracker exposes the service's load/export counters.
func (s *Service) Tracker() *Tracker { return s.tracker }

// Dataset returns the cleaned, restricted dataset, loading the file if it changed.
func (s *Service) Dataset() (ds *model.Dataset, err error) {
	start := time.Now()
	defer logger.TimeTrack(start, "dataset load")

	full, report, err := s.cache.Get(s.DataFile)
	s.tracker.RecordLoad(report)
	if err != nil {
		logger.Errorf("❌ failed to load %s: %v", s.DataFile, err)
		return nil, err
	}

	ds, err = RestrictToKeyIndicators(full, s.KeyIndicators)
	if err != nil {
		logger.Errorf("❌ %v", err)
		return nil, err
	}
	return ds, nil
}

// Reload drops the cached dataset and reads the file again.
func (s *Service) Reload() (*model.Dataset, error) {
	s.cache.Invalidate(s.DataFile)
	logger.Infof("🔄 reloading %s", s.DataFile)
	return s.Dataset()
}

// Indicators lists the indicator names available for selection.
func (s *Service) Indicators() ([]string, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return Indicators(ds), nil
}

// Select loads the dataset and returns the subset for names.
func (s *Service) Select(names ...string) (model.Subset, error) {
	ds, err := s.Dataset()
	if err != nil {
		return model.Subset{Indicators: names}, err
	}
	return SelectIndicator(ds, names...), nil
}

// Compare returns one value per indicator for year.
func (s *Service) Compare(names []string, year int) ([]model.IndicatorValue, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return CompareYear(ds, names, year)
}

// Export serializes subset and logs the download.
func (s *Service) Export(subset model.Subset, format string) (*model.ExportResult, []byte, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	data, err := Export(subset, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to export %s: %w", subset.Label(), err)
	}

	result := &model.ExportResult{
		ID:          uuid.New().String(),
		Indicator:   subset.Label(),
		Format:      format,
		FileName:    ExportFileNameFor(subset.Label(), format),
		RecordCount: len(subset.Records),
		Bytes:       len(data),
		Timestamp:   time.Now().UTC(),
	}
	s.tracker.RecordExport(*result)
	logger.Infof("💾 exported %d records to %s", result.RecordCount, result.FileName)
	return result, data, nil
}
