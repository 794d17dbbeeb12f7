// pointobs opens an observation data source through one of the built-in
// engines, applies a filter chain, and prints a summary of what survives.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/envsense/pointobs/internal/log"
	_ "github.com/envsense/pointobs/internal/readers/csvreader"
	_ "github.com/envsense/pointobs/internal/readers/sqlitereader"
	_ "github.com/envsense/pointobs/internal/readers/tsdbreader"
	"github.com/envsense/pointobs/pkg/filter"
	"github.com/envsense/pointobs/pkg/timeseries"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	engineName := flag.String("engine", "csv_timeseries", "Engine to open the source with (see -list-engines)")
	source := flag.String("source", "", "Data source: CSV file, SQLite database, or Postgres connection string")
	chainFile := flag.String("filters", "", "Path to a YAML filter-chain file (list of {name, args})")
	logFile := flag.String("log-file", "", "Also log to this file (rotated)")
	listFilters := flag.Bool("list-filters", false, "List registered filters and exit")
	listEngines := flag.Bool("list-engines", false, "List registered engines and exit")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pointobs %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	var err error
	if *logFile != "" {
		err = log.InitWithFile(*debug, *logFile)
	} else {
		err = log.Init(*debug)
	}
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *listFilters {
		for _, name := range filter.Default().List() {
			fmt.Println(name)
		}
		os.Exit(0)
	}
	if *listEngines {
		for _, name := range timeseries.Engines() {
			e, _ := timeseries.LookupEngine(name)
			fmt.Printf("%s\t%s\n", name, e.Description())
		}
		os.Exit(0)
	}

	if *source == "" {
		log.Errorf("no -source given. Run with -h for help")
		os.Exit(1)
	}

	filters, err := loadChain(*chainFile)
	if err != nil {
		log.Errorf("Failed to load filter chain: %v", err)
		os.Exit(1)
	}

	log.Infof("run %s: opening %s via %s with %d filters", uuid.New(), *source, *engineName, len(filters))

	reader, err := timeseries.OpenEngine(*engineName, *source, filters...)
	if err != nil {
		log.Errorf("Failed to open source: %v", err)
		os.Exit(1)
	}
	defer reader.Close()

	if err := summarize(reader); err != nil {
		log.Errorf("Failed to summarize source: %v", err)
		os.Exit(1)
	}
}

// chainEntry is one element of the YAML filter-chain file.
type chainEntry struct {
	Name string    `yaml:"name"`
	Args yaml.Node `yaml:"args"`
}

// loadChain builds filters from a YAML chain file by decoding each
// entry's args into the registered prototype's configuration.
func loadChain(path string) ([]timeseries.Filter, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []chainEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	registry := filter.Default()
	filters := make([]timeseries.Filter, 0, len(entries))
	for _, entry := range entries {
		cfg, err := registry.NewConfig(entry.Name)
		if err != nil {
			return nil, err
		}
		if entry.Args.Kind != 0 {
			if err := entry.Args.Decode(cfg); err != nil {
				return nil, fmt.Errorf("filter %q: %w", entry.Name, err)
			}
		}
		f, err := registry.Get(entry.Name, cfg)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func summarize(reader timeseries.Reader) error {
	stations := reader.Stations()
	fmt.Printf("stations: %d\n", len(stations))

	total := 0
	for _, variable := range reader.Variables() {
		data, err := reader.Data(variable)
		if err != nil {
			return err
		}
		total += data.Len()
		fmt.Printf("%s: %d records", variable, data.Len())
		if values := data.Values(); len(values) > 0 {
			fmt.Printf(" (min %.3f, max %.3f, mean %.3f, stddev %.3f)",
				floats.Min(values), floats.Max(values),
				stat.Mean(values, nil), stat.StdDev(values, nil))
		}
		fmt.Println()
	}
	fmt.Printf("total records: %d\n", total)
	return nil
}
