// cmd/tools/catalog-export/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
	"tool-dashboard/internal/router"
	"tool-dashboard/internal/tools"
	"tool-dashboard/pkg/registry"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	showCmd := flag.NewFlagSet("show", flag.ExitOnError)

	// Export command flags
	outPath := exportCmd.String("out", "configs/tool-catalog.json", "Output file (.json, .yaml or .yml)")
	configPath := exportCmd.String("config", "", "Config file; defaults to the usual search path")
	version := exportCmd.String("version", "", "Catalog version; defaults to app.version")

	// Validate command flags
	validatePath := validateCmd.String("path", "configs/tool-catalog.json", "Path to catalog file")

	// Show command flags
	showPath := showCmd.String("path", "configs/tool-catalog.json", "Path to catalog file")
	showID := showCmd.String("id", "", "Tool id (e.g., geocode-lookup)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		catalog, err := buildCatalog(*configPath, *version)
		if err != nil {
			fmt.Printf("Error building catalog: %v\n", err)
			os.Exit(1)
		}
		if err := registry.SaveCatalog(catalog, *outPath); err != nil {
			fmt.Printf("Error writing catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d tools to %s\n", len(catalog.Tools), *outPath)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		catalog, err := registry.LoadCatalog(*validatePath)
		if err != nil {
			fmt.Printf("Error loading catalog: %v\n", err)
			os.Exit(1)
		}
		if err := checkAgainstBuild(catalog); err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog validation passed.")

	case "show":
		showCmd.Parse(os.Args[2:])
		if *showID == "" {
			fmt.Println("Error: id is required for show.")
			showCmd.Usage()
			os.Exit(1)
		}
		catalog, err := registry.LoadCatalog(*showPath)
		if err != nil {
			fmt.Printf("Error loading catalog: %v\n", err)
			os.Exit(1)
		}
		entry, ok := catalog.Find(*showID)
		if !ok {
			fmt.Printf("Tool %s not found in catalog\n", *showID)
			os.Exit(1)
		}
		printEntry(entry)

	case "help":
		fallthrough
	default:
		help()
	}
}

// buildCatalog constructs every tool without credentials; tools only resolve
// secrets when they run.
func buildCatalog(configPath, version string) (*registry.ToolCatalog, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if version == "" {
		version = cfg.App.Version
	}
	if version == "" {
		version = "1.0.0"
	}

	built, failed := tools.Build(tools.Options{
		AppConfig: cfg,
		Logger:    logger.NewNoOpLogger(),
		Secrets:   secrets.Static{},
	})
	for name, err := range failed {
		fmt.Printf("Warning: %s left out of catalog: %v\n", name, err)
	}

	rt, err := router.New(built, router.Options{})
	if err != nil {
		return nil, err
	}

	catalog, err := rt.Catalog(version)
	if err != nil {
		return nil, err
	}
	return catalog, catalog.Validate()
}

// checkAgainstBuild validates the file and reports tools it is missing.
func checkAgainstBuild(catalog *registry.ToolCatalog) error {
	if err := catalog.Validate(); err != nil {
		return err
	}

	var missing []string
	for _, name := range tools.Names {
		if _, ok := catalog.Find(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("catalog is missing tools: %v", missing)
	}
	return nil
}

func printEntry(entry *registry.ToolEntry) {
	fmt.Printf("%s (%s)\n", entry.DisplayName, entry.ID)
	fmt.Printf("  category: %s\n", entry.Category)
	fmt.Printf("  enabled:  %t\n", entry.Enabled)
	if len(entry.Secrets) > 0 {
		fmt.Printf("  secrets:  %v\n", entry.Secrets)
	}
	for _, f := range entry.Fields {
		required := ""
		if f.Required {
			required = " (required)"
		}
		fmt.Printf("  - %s [%s] %s%s\n", f.Name, f.Kind, f.Label, required)
	}
}

func help() {
	fmt.Println("Usage: catalog-export <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  export    Build every tool and write the catalog")
	fmt.Println("  validate  Check a catalog file against the built-in tools")
	fmt.Println("  show      Print one tool from a catalog file")
}
