package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/gridpath/config"
)

// Output file names.
const (
	RunsFile    = "runs.csv"
	PathFile    = "path.csv"
	SummaryFile = "summary.csv"
	ConfigFile  = "config.yaml"
)

// csvFile is an output file that writes its header once.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

// OutputManager handles structured run output with CSV logging.
// Files are created on first write.
type OutputManager struct {
	dir   string
	files map[string]*csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). All methods accept a nil receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &OutputManager{dir: dir, files: make(map[string]*csvFile)}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteRun appends a run record to runs.csv.
func (om *OutputManager) WriteRun(r RunRecord) error {
	return om.write(RunsFile, []RunRecord{r})
}

// WritePath appends path cells to path.csv.
func (om *OutputManager) WritePath(records []PathRecord) error {
	if len(records) == 0 {
		return nil
	}
	return om.write(PathFile, records)
}

// WriteSummaries appends sweep summaries to summary.csv.
func (om *OutputManager) WriteSummaries(s []Summary) error {
	if len(s) == 0 {
		return nil
	}
	return om.write(SummaryFile, s)
}

func (om *OutputManager) write(name string, records any) error {
	if om == nil {
		return nil
	}

	cf, ok := om.files[name]
	if !ok {
		f, err := os.Create(filepath.Join(om.dir, name))
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		cf = &csvFile{f: f}
		om.files[name] = cf
	}

	if !cf.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, cf.f); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		cf.headerWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, cf.f); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for name, cf := range om.files {
		if err := cf.f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing %s: %w", name, err)
		}
	}
	om.files = map[string]*csvFile{}

	return firstErr
}
