// Command stereocode is the CLI front end for the stereotype classification
// engine (spec §6's "CLI surface (external)").
//
// Grounded on CWBudde-go-dws's cmd/dwscript/cmd root-command shape (one
// cobra.Command, flags bound in init, RunE doing the work) generalized from
// a multi-subcommand tree to the single-operation shape the teacher's own
// cmd/morfx/main.go already has (one command, one job, no subcommands) —
// the pack's more common cobra idiom applied to morfx's single-purpose CLI.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/oxhq/stereocode/archive"
	"github.com/oxhq/stereocode/archivepath"
	"github.com/oxhq/stereocode/core"
	"github.com/oxhq/stereocode/internal/config"
	"github.com/oxhq/stereocode/internal/telemetry"
	"github.com/oxhq/stereocode/primitives"
	"github.com/oxhq/stereocode/report"
	"github.com/oxhq/stereocode/stereotype"
	"github.com/oxhq/stereocode/store"
	"github.com/oxhq/stereocode/taxonomy"
)

var (
	inputPattern    string
	outputPath      string
	primitivesPath  string
	taxonomyPath    string
	reportDir       string
	storePath       string
	threshold       int
	classesOnly     bool
	methodsOnly     bool
	showDiff        bool
	verbose         bool
)

func main() {
	cfg := config.Load()

	root := &cobra.Command{
		Use:   "stereocode",
		Short: "Annotate a parsed-source XML archive with method and class stereotypes",
		Long: `stereocode reads a parsed-source archive (an XML representation of one
or more C++, C#, or Java compilation units) and writes a copy of it in which
every class and method element carries a "stereotype" attribute describing
its role.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&inputPattern, "input", "i", "", "input archive path or glob pattern (required)")
	flags.StringVarP(&outputPath, "output", "o", "", "output archive path (default: <input>.annotated.xml)")
	flags.StringVar(&primitivesPath, "primitives", "", "path to a primitive-type file overriding the built-in table")
	flags.StringVar(&taxonomyPath, "taxonomy", "", "path to a stereotype taxonomy file overriding the built-in closed set")
	flags.StringVar(&reportDir, "report-dir", "", "directory to write classes.csv/methods.csv reports into")
	flags.StringVar(&storePath, "store", "", "path to a SQLite database recording this run's history")
	flags.IntVar(&threshold, "methods-per-class-threshold", 0, "large-class method-count cutoff (default 21)")
	flags.BoolVar(&classesOnly, "classes-only", false, "annotate classes only (methods are still analysed)")
	flags.BoolVar(&methodsOnly, "methods-only", false, "annotate methods only")
	flags.BoolVarP(&showDiff, "diff", "d", false, "print a unified diff between input and output to stderr")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	_ = root.MarkFlagRequired("input")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	level := telemetry.LevelInfo
	if verbose {
		level = telemetry.LevelDebug
	}
	logger := telemetry.New(level)

	if primitivesPath == "" {
		primitivesPath = cfg.PrimitivesPath
	}
	if taxonomyPath == "" {
		taxonomyPath = cfg.TaxonomyPath
	}
	if reportDir == "" {
		reportDir = cfg.ReportDir
	}
	if storePath == "" {
		storePath = cfg.StorePath
	}
	if threshold == 0 {
		threshold = cfg.MethodsPerClassThreshold
	}

	paths, err := archivepath.Resolve(inputPattern)
	if err != nil {
		return fmt.Errorf("resolving input pattern: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no archives matched %q", inputPattern)
	}

	table, err := loadPrimitives(primitivesPath)
	if err != nil {
		return fmt.Errorf("loading primitive table: %w", err)
	}

	taxonomyTable, err := loadTaxonomy(taxonomyPath)
	if err != nil {
		return fmt.Errorf("loading taxonomy: %w", err)
	}

	var db *gorm.DB
	if storePath != "" {
		d, err := store.Connect(storePath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		db = d
	}

	for _, path := range paths {
		if err := processArchive(path, table, taxonomyTable, threshold, db, logger); err != nil {
			return fmt.Errorf("processing %s: %w", path, err)
		}
	}
	return nil
}

func processArchive(path string, table *primitives.Table, taxonomyTable *taxonomy.Table, threshold int, db *gorm.DB, logger *telemetry.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	before, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	arc, err := archive.Load(f)
	if err != nil {
		return err
	}
	for _, w := range arc.Warnings() {
		logger.Warning("%s", w.Error())
	}

	driver := archive.NewDriver(arc, table, stereotype.ClassOptions{MethodsPerClassThreshold: threshold})
	driver.ClassesOnly = classesOnly
	driver.MethodsOnly = methodsOnly

	classes, err := driver.Run()
	if err != nil {
		return err
	}
	for _, label := range taxonomy.Validate(taxonomyTable, classes) {
		logger.Warning("stereotype %q is not in the taxonomy", label)
	}
	if err := driver.Annotate(classes); err != nil {
		return fmt.Errorf("annotating archive: %w", err)
	}

	out, err := arc.Serialize()
	if err != nil {
		return fmt.Errorf("serializing: %w", err)
	}

	dest := outputPath
	if dest == "" {
		dest = path + ".annotated.xml"
	}
	if err := archive.WriteFile(dest, out, archive.DefaultWriteConfig()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("wrote %s (%d classes)", dest, len(classes))

	if showDiff {
		diff, err := report.UnifiedDiff(path, dest, string(before), out)
		if err == nil && diff != "" {
			fmt.Fprintln(os.Stderr, diff)
		}
	}

	if reportDir != "" {
		if err := writeReports(reportDir, classes); err != nil {
			return fmt.Errorf("writing reports: %w", err)
		}
	}

	if db != nil {
		if err := recordRun(db, path, arc, classes); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
	}
	return nil
}

func writeReports(dir string, classes []*core.Class) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	classesFile, err := os.Create(dir + "/classes.csv")
	if err != nil {
		return err
	}
	defer classesFile.Close()
	if err := report.WriteClassCSV(classesFile, classes); err != nil {
		return err
	}

	methodsFile, err := os.Create(dir + "/methods.csv")
	if err != nil {
		return err
	}
	defer methodsFile.Close()
	return report.WriteMethodCSV(methodsFile, classes)
}

// recordRun persists a summary of this archive's classification as a
// store.Run plus one store.ClassStereotypeCount row per class.
func recordRun(db *gorm.DB, path string, arc *archive.XMLArchive, classes []*core.Class) error {
	methodCount := 0
	rows := make([]store.ClassStereotypeCount, 0, len(classes))
	for _, class := range classes {
		methodCount += len(class.Methods) - class.ConstructorDestructorCount

		histogram := make([]string, 0, len(class.Methods))
		for _, m := range class.Methods {
			histogram = append(histogram, m.Name+":"+strings.Join(m.Stereotypes, "|"))
		}
		rows = append(rows, store.ClassStereotypeCount{
			Language:        string(class.Language),
			ClassName:       class.Names.Bare,
			Stereotypes:     strings.Join(class.Stereotypes, ";"),
			MethodHistogram: strings.Join(histogram, ";"),
		})
	}

	run := &store.Run{
		ArchivePath: path,
		UnitCount:   len(arc.Units()),
		ClassCount:  len(classes),
		MethodCount: methodCount,
		FinishedAt:  time.Now(),
	}
	return store.RecordRun(db, run, rows)
}

func loadPrimitives(path string) (*primitives.Table, error) {
	if path == "" {
		return primitives.New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return primitives.Load(f)
}

func loadTaxonomy(path string) (*taxonomy.Table, error) {
	if path == "" {
		return taxonomy.New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return taxonomy.Load(f)
}
