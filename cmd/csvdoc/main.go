package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/oleg578/csvdoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(afero.NewOsFs(), os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// docFlags holds the flags shared by every command that opens a CSV file.
type docFlags struct {
	delimiter string
	quote     string
	header    bool
	fields    []string
	strict    bool
}

func (f *docFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.delimiter, "delimiter", "d", ",", "field delimiter")
	cmd.Flags().StringVarP(&f.quote, "quote", "q", `"`, "quote character")
	cmd.Flags().BoolVar(&f.header, "header", false, "use the first row as field names")
	cmd.Flags().StringSliceVarP(&f.fields, "fields", "f", nil, "field names in column order, empty to skip a column")
	cmd.Flags().BoolVar(&f.strict, "strict-quotes", false, "reject quotes inside unquoted fields")
}

func (f *docFlags) options(logger *slog.Logger) (csvdoc.Options, error) {
	if len(f.delimiter) != 1 {
		return csvdoc.Options{}, fmt.Errorf("delimiter must be a single byte, got %q", f.delimiter)
	}
	if len(f.quote) != 1 {
		return csvdoc.Options{}, fmt.Errorf("quote must be a single byte, got %q", f.quote)
	}
	opts := csvdoc.Options{
		Comma:        f.delimiter[0],
		Quote:        f.quote[0],
		Header:       f.header,
		StrictQuotes: f.strict,
		Logger:       logger,
	}
	if len(f.fields) > 0 {
		opts.Fields = csvdoc.Names(f.fields...)
	}
	return opts, nil
}

func newRootCmd(fsys afero.Fs, out io.Writer) *cobra.Command {
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("show-version", false, "show version")
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:   "csvdoc",
		Short: "CSV document viewer",
		Long:  `Inspect CSV files through a lazily parsed, read-only document`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetFlags(log.Lshortfile)
			if showVersion, _ := cmd.Flags().GetBool("show-version"); showVersion {
				fmt.Fprintf(out, "csvdoc: version %q\n", csvdoc.Version().Core())
			}
			return nil
		},
	}
	cmdRoot.SetOut(out)
	cmdRoot.AddCommand(cmdShow(fsys, out))
	cmdRoot.AddCommand(cmdCount(fsys, out))
	cmdRoot.AddCommand(cmdNames(fsys, out))
	cmdRoot.AddCommand(cmdVersion(out))
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}
	return cmdRoot
}

// openDoc opens the file named by the command's first argument.
func openDoc(cmd *cobra.Command, fsys afero.Fs, flags *docFlags, path string) (*csvdoc.Document, error) {
	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	opts, err := flags.options(logger)
	if err != nil {
		return nil, err
	}
	return csvdoc.Open(fsys, path, opts)
}

func cmdShow(fsys afero.Fs, out io.Writer) *cobra.Command {
	var flags docFlags
	rows := 10
	addFlags := func(cmd *cobra.Command) error {
		flags.add(cmd)
		cmd.Flags().IntVarP(&rows, "rows", "n", rows, "number of rows to show, 0 for all")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "show <csv-file>",
		Short:        "print rows with their field keys",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDoc(cmd, fsys, &flags, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			// Only parse what is going to be printed.
			if rows > 0 {
				if err := doc.ParseUpTo(rows); err != nil {
					return err
				}
			}
			shown := 0
			for i, row := range doc.All() {
				fmt.Fprintf(out, "Row %d:\n", i)
				for key, value := range row.All() {
					fmt.Fprintf(out, "  %s: %s\n", key, value)
				}
				if shown++; shown == rows {
					break
				}
			}
			return doc.Err()
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdCount(fsys afero.Fs, out io.Writer) *cobra.Command {
	var flags docFlags
	var cmd = &cobra.Command{
		Use:          "count <csv-file>",
		Short:        "print the number of data rows",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDoc(cmd, fsys, &flags, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			n, err := doc.Size()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, n)
			return nil
		},
	}
	flags.add(cmd)
	return cmd
}

func cmdNames(fsys afero.Fs, out io.Writer) *cobra.Command {
	var flags docFlags
	var cmd = &cobra.Command{
		Use:          "names <csv-file>",
		Short:        "print the field names by column",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDoc(cmd, fsys, &flags, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			names, err := doc.Names()
			if err != nil {
				return err
			}
			for _, pos := range slices.Sorted(maps.Keys(names)) {
				fmt.Fprintf(out, "%d: %s\n", pos, names[pos])
			}
			return nil
		},
	}
	flags.add(cmd)
	return cmd
}

func cmdVersion(out io.Writer) *cobra.Command {
	showBuildInfo := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Fprintln(out, csvdoc.Version().String())
				return nil
			}
			fmt.Fprintln(out, csvdoc.Version().Core())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}
