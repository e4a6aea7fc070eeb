package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pet-adoption/internal/adapters/storage/flatfile"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/config"
	"pet-adoption/internal/platform/logger"
)

type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	dataFile   string
	verbose    bool

	svc *pets.Service
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "petctl",
		Short:         "Manage the pet adoption registry file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default: $CONFIG_FILE)")
	root.PersistentFlags().StringVarP(&a.dataFile, "file", "f", "", "registry CSV file (overrides config / $PETS_FILE)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log storage operations to stderr")

	root.AddCommand(
		a.listCmd(),
		a.addCmd(),
		a.updateCmd(),
		a.removeCmd(),
		a.exportCmd(),
		a.importCmd(),
	)
	return root
}

func (a *app) init() error {
	path := a.configPath
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	return a.open(cfg)
}

func (a *app) open(cfg *config.Config) error {
	file := cfg.DataFile
	if strings.TrimSpace(a.dataFile) != "" {
		file = a.dataFile
	}

	lvl := logger.Warn
	if a.verbose {
		lvl = logger.Debug
	}
	log := logger.New(logger.Options{Level: lvl, Format: logger.FormatText, Out: a.errOut})

	store, err := flatfile.New(file, log)
	if err != nil {
		return err
	}
	a.svc = pets.NewService(store)
	return nil
}

func (a *app) listCmd() *cobra.Command {
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all pets in file order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asCSV {
				return a.svc.ExportTo(cmd.Context(), a.out)
			}

			items, err := a.svc.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tAGE\tGENDER\tWEIGHT\tDESCRIPTION")
			for _, p := range items {
				fmt.Fprintln(tw, strings.Join(p.Fields(), "\t"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print raw CSV instead of a table")
	return cmd
}

// petFlags registra los 6 campos descriptivos en cmd.
func petFlags(cmd *cobra.Command, p *pets.Patch) {
	cmd.Flags().StringVar(&p.Name, "name", "", "pet name")
	cmd.Flags().StringVar(&p.Species, "species", "", "species")
	cmd.Flags().StringVar(&p.Age, "age", "", "age")
	cmd.Flags().StringVar(&p.Gender, "gender", "", "gender")
	cmd.Flags().StringVar(&p.Weight, "weight", "", "weight")
	cmd.Flags().StringVar(&p.Description, "description", "", "free text description")
}

func (a *app) addCmd() *cobra.Command {
	var (
		id     string
		fields pets.Patch
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a new pet (all seven fields required)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.svc.Add(cmd.Context(), pets.AddInput{
				ID:          id,
				Name:        fields.Name,
				Species:     fields.Species,
				Age:         fields.Age,
				Gender:      fields.Gender,
				Weight:      fields.Weight,
				Description: fields.Description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "added pet %s\n", p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "pet id")
	petFlags(cmd, &fields)
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	var patch pets.Patch

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Overwrite the given fields of a pet; omitted fields keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.svc.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "updated pet %s\n", p.ID)
			return nil
		},
	}
	petFlags(cmd, &patch)
	return cmd
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a pet by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "removed pet %s\n", args[0])
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write the whole registry to another CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Export(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "exported to %s\n", args[0])
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Read a CSV file (strict: any row without 7 fields rejects the whole file)",
		Long: `Read a CSV file of pets. Nothing is written unless --mode says so:
  preview  only parse and print the records (default)
  replace  the registry becomes exactly the imported records
  merge    append records with new ids; existing ids are kept and reported`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := pets.ParseImportMode(modeFlag)
			if err != nil {
				return err
			}

			res, err := a.svc.Import(cmd.Context(), args[0], mode)
			if err != nil {
				return err
			}

			switch res.Mode {
			case pets.ImportPreview:
				fmt.Fprintf(a.out, "%d records parsed (preview, nothing written)\n", len(res.Records))
				return pets.WriteCSV(a.out, res.Records)
			case pets.ImportReplace:
				fmt.Fprintf(a.out, "registry replaced with %d records\n", res.Added)
			case pets.ImportMerge:
				fmt.Fprintf(a.out, "%d records added, %d skipped\n", res.Added, len(res.Skipped))
				for _, id := range res.Skipped {
					fmt.Fprintf(a.out, "  skipped %s (id already present)\n", id)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modeFlag, "mode", string(pets.ImportPreview), "preview | replace | merge")
	return cmd
}
