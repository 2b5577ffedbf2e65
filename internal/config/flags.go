package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into inputs, output, behavior, display, and utility.
// Negated and shorthand flags are applied after Parse so Config values from
// defaults, the config file and the environment hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/backmassage/gallerytree/internal/naming"
)

// ParseFlags parses args (without the program name) into cfg. The config
// file named by --config or GALLERYTREE_CONFIG and the GALLERYTREE_*
// environment are applied first, so flags win. On --help or --version it
// prints and exits.
func ParseFlags(cfg *Config, args []string, version string) error {
	path := configPathFromArgs(args)
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return err
		}
	}
	ApplyEnv(cfg)

	fs := flag.NewFlagSet("gallerytree", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	var deferred deferredFlags

	defineInputFlags(fs, cfg, &deferred)
	defineOutputFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &deferred)
	defineDisplayFlags(fs, cfg, &deferred)
	defineUtilityFlags(fs, cfg, &deferred)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if deferred.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if deferred.showVersion {
		fmt.Fprintln(os.Stdout, "gallerytree v"+version)
		os.Exit(0)
	}

	applyDeferredFlags(fs, cfg, &deferred)
	return parsePositionalArgs(fs, cfg)
}

// deferredFlags holds flags that are applied after Parse. They either
// depend on other flags (tables vs explicit files), invert a value
// (no-color), or trigger exit (showHelp, showVersion).
type deferredFlags struct {
	tablesDir   string
	tablePrefix string
	keepGoing   bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// configPathFromArgs finds --config before flags are parsed, since the file
// must be applied before flag values.
func configPathFromArgs(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
	}
	return ""
}

// defineInputFlags registers -e/--export-root, --categories, --images, --assignments, --tables, --prefix.
func defineInputFlags(fs *flag.FlagSet, cfg *Config, d *deferredFlags) {
	fs.StringVar(&cfg.ExportRoot, "export-root", cfg.ExportRoot, "Piwigo download root (contains upload/)")
	fs.StringVar(&cfg.ExportRoot, "e", cfg.ExportRoot, "Same as --export-root")
	fs.StringVar(&cfg.CategoriesFile, "categories", cfg.CategoriesFile, "piwigo_categories JSON export")
	fs.StringVar(&cfg.ImagesFile, "images", cfg.ImagesFile, "piwigo_images JSON export")
	fs.StringVar(&cfg.AssignmentsFile, "assignments", cfg.AssignmentsFile, "piwigo_image_category JSON export")
	fs.StringVar(&d.tablesDir, "tables", "", "Directory holding all three JSON exports")
	fs.StringVar(&d.tablePrefix, "prefix", DefaultTablePrefix, "Table name prefix used with --tables")
}

// defineOutputFlags registers -t/--target and --config.
func defineOutputFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.TargetRoot, "target", cfg.TargetRoot, "Target directory for the category tree")
	fs.StringVar(&cfg.TargetRoot, "t", cfg.TargetRoot, "Same as --target")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML config file")
}

// defineBehaviorFlags registers --names, --on-copy-error, -k/--keep-going, -d/--dry-run, --orphans.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, d *deferredFlags) {
	fs.Var(&nameModeValue{&cfg.NameMode}, "names", "Directory naming: ascii | unicode | slug")
	fs.Var(&errorPolicyValue{&cfg.OnCopyError}, "on-copy-error", "Unexpected copy errors: abort | continue")
	fs.BoolVar(&d.keepGoing, "keep-going", false, "Same as --on-copy-error continue")
	fs.BoolVar(&d.keepGoing, "k", false, "Same as --keep-going")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Preview only; create and copy nothing")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.BoolVar(&cfg.ReportOrphans, "orphans", cfg.ReportOrphans, "Report export files no image references")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, d *deferredFlags) {
	fs.BoolVar(&d.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&d.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Check the export and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file (rotated)")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, d *deferredFlags) {
	fs.BoolVar(&d.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&d.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&d.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&d.showHelp, "h", false, "Show this help and exit")
}

// applyDeferredFlags copies deferred flag values into cfg. --tables only
// fills the export files that were not given explicitly.
func applyDeferredFlags(fs *flag.FlagSet, cfg *Config, d *deferredFlags) {
	if d.tablesDir != "" {
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["categories"] {
			cfg.CategoriesFile = TablePath(d.tablesDir, d.tablePrefix, "categories")
		}
		if !set["images"] {
			cfg.ImagesFile = TablePath(d.tablesDir, d.tablePrefix, "images")
		}
		if !set["assignments"] {
			cfg.AssignmentsFile = TablePath(d.tablesDir, d.tablePrefix, "image_category")
		}
	}
	if d.keepGoing {
		cfg.OnCopyError = ErrorPolicyContinue
	}
	if d.noColor {
		cfg.ColorMode = ColorNever
	} else if d.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs accepts either no positional args or exactly
// <export_root> <target_root>.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 2:
		cfg.ExportRoot = NormalizeDirArg(args[0])
		cfg.TargetRoot = NormalizeDirArg(args[1])
		return nil
	}
	return fmt.Errorf("expected <export_root> <target_root> or no positional args (got %d)", len(args))
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "gallerytree v" + version + " - rebuild a Piwigo gallery as a directory tree"},
		{"", ""},
		{"  gallerytree [OPTIONS] [<export_root> <target_root>]", ""},
		{"", ""},
		{"Inputs", ""},
		{"  -e, --export-root <dir>", "Piwigo download root (default: piwigo_download)"},
		{"  --categories <file>", "Categories export (default: mysql_export/piwigo_categories.json)"},
		{"  --images <file>", "Images export (default: mysql_export/piwigo_images.json)"},
		{"  --assignments <file>", "Image/category export (default: mysql_export/piwigo_image_category.json)"},
		{"  --tables <dir>", "Read all three exports from <dir>"},
		{"  --prefix <prefix>", "Table prefix for --tables (default: piwigo_)"},
		{"  --config <file>", "YAML config file (or GALLERYTREE_CONFIG)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -t, --target <dir>", "Target directory (default: target_path)"},
		{"  --names <ascii|unicode|slug>", "Directory naming (default: ascii)"},
		{"  --on-copy-error <policy>", "abort | continue on unexpected copy errors (default: abort)"},
		{"  -k, --keep-going", "Same as --on-copy-error continue"},
		{"  -d, --dry-run", "Preview only; create and copy nothing"},
		{"  --orphans", "Report export files no image references"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to a rotating file"},
		{"  -c, --check", "Check the export and exit"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types (naming.Mode, ErrorPolicy) with flag.Var.

type nameModeValue struct{ p *naming.Mode }

func (n *nameModeValue) String() string { return string(*n.p) }
func (n *nameModeValue) Set(s string) error {
	m, ok := naming.ParseMode(s)
	if !ok {
		return fmt.Errorf("invalid naming mode %q (use 'ascii', 'unicode' or 'slug')", s)
	}
	*n.p = m
	return nil
}

type errorPolicyValue struct{ p *ErrorPolicy }

func (e *errorPolicyValue) String() string { return string(*e.p) }
func (e *errorPolicyValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "abort":
		*e.p = ErrorPolicyAbort
	case "continue":
		*e.p = ErrorPolicyContinue
	default:
		return fmt.Errorf("invalid copy error policy %q (use 'abort' or 'continue')", s)
	}
	return nil
}
