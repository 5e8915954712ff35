package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aligator/fatinspect"
	"github.com/aligator/fatinspect/internal/config"
	"github.com/aligator/fatinspect/internal/diskcheck"
	"github.com/aligator/fatinspect/internal/imagesource"
	"github.com/aligator/fatinspect/internal/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Allow tests to inject an in-memory filesystem.
var newFs = func() afero.Fs {
	return afero.NewOsFs()
}

// Allow tests to replace go-diskfs.
var compareDisk = diskcheck.Compare

// ImageSummary is the structured output of the partition listing.
type ImageSummary struct {
	Image         string                        `json:"image" yaml:"image"`
	Format        imagesource.Format            `json:"format" yaml:"format"`
	Partitions    []fatinspect.PartitionSummary `json:"partitions" yaml:"partitions"`
	Discrepancies []diskcheck.Discrepancy       `json:"discrepancies,omitempty" yaml:"discrepancies,omitempty"`
}

type rootOptions struct {
	configPath string
	cfg        config.Config

	fs  afero.Fs
	log *zap.SugaredLogger
}

// createRootCommand creates the fatinspect command.
func createRootCommand() *cobra.Command {
	opts := &rootOptions{cfg: config.Default()}

	cmd := &cobra.Command{
		Use:   "fatinspect [flags] IMAGE [PARTITION [PATH]]",
		Short: "inspects FAT32 partitions of a raw disk image",
		Long: `fatinspect reads a raw disk image with a master boot record.

  fatinspect IMAGE                  lists the FAT32 partitions
  fatinspect IMAGE PARTITION        prints the boot sector and the directory tree
  fatinspect IMAGE PARTITION PATH   dumps every file matching PATH

PARTITION is the 1-based number of the partition table entry. Only the base
names of PATH are compared, extensions are ignored. Images compressed with
gzip, zstd or xz are decompressed in memory.`,
		Args:          cobra.RangeArgs(1, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.complete(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.cfg.Format, "format", opts.cfg.Format,
		"output format of the summaries: text, json or yaml")
	flags.BoolVar(&opts.cfg.Pretty, "pretty", opts.cfg.Pretty,
		"pretty-print JSON output (only for --format json)")
	flags.BoolVar(&opts.cfg.IncludeSlack, "include-slack", opts.cfg.IncludeSlack,
		"dump the unused rest of the last cluster of a file too")
	flags.BoolVar(&opts.cfg.Raw, "raw", opts.cfg.Raw,
		"write the file content as is instead of a hex dump")
	flags.BoolVar(&opts.cfg.CrossCheck, "cross-check", opts.cfg.CrossCheck,
		"compare the partition table with the one go-diskfs reads (raw images only)")
	flags.StringVar(&opts.cfg.LogLevel, "log-level", opts.cfg.LogLevel,
		"log level: debug, info, warn or error")
	flags.StringVar(&opts.configPath, "config", "",
		"YAML file with defaults for the flags above")

	return cmd
}

// complete applies the config file to every flag that was not set explicitly
// and sets up the logger.
func (o *rootOptions) complete(flags *pflag.FlagSet) error {
	o.fs = newFs()

	if o.configPath != "" {
		file, err := config.Load(o.fs, o.configPath)
		if err != nil {
			return err
		}
		mergeConfig(&o.cfg, file, flags)
	}

	switch o.cfg.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported --format %q (supported: text, json, yaml)", o.cfg.Format)
	}

	log, err := logger.Init(o.cfg.LogLevel)
	if err != nil {
		return err
	}
	o.log = log
	return nil
}

func mergeConfig(dst *config.Config, file config.Config, flags *pflag.FlagSet) {
	if !flags.Changed("format") {
		dst.Format = file.Format
	}
	if !flags.Changed("pretty") {
		dst.Pretty = file.Pretty
	}
	if !flags.Changed("include-slack") {
		dst.IncludeSlack = file.IncludeSlack
	}
	if !flags.Changed("raw") {
		dst.Raw = file.Raw
	}
	if !flags.Changed("cross-check") {
		dst.CrossCheck = file.CrossCheck
	}
	if !flags.Changed("log-level") {
		dst.LogLevel = file.LogLevel
	}
}

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	source, err := imagesource.Open(o.fs, args[0], o.log)
	if err != nil {
		return err
	}
	defer source.Close()

	img, err := fatinspect.OpenImage(source, fatinspect.WithLogger(o.log))
	if err != nil {
		return fmt.Errorf("read master boot record: %w", err)
	}

	if len(args) == 1 {
		return o.listPartitions(cmd.OutOrStdout(), source, img)
	}

	index, err := parsePartition(args[1])
	if err != nil {
		return err
	}
	fat, err := img.OpenPartition(index)
	if err != nil {
		return fmt.Errorf("open partition %s: %w", args[1], err)
	}

	if len(args) == 2 {
		return o.describePartition(cmd.OutOrStdout(), index+1, fat)
	}
	return o.dumpFile(cmd.OutOrStdout(), cmd.ErrOrStderr(), fat, args[2])
}

// parsePartition converts the 1-based partition number to a table index.
func parsePartition(arg string) (int, error) {
	number, err := strconv.Atoi(arg)
	if err != nil || number < 1 || number > 4 {
		return 0, fmt.Errorf("%w: partition number must be 1 to 4, got %q", fatinspect.ErrInvalidPartition, arg)
	}
	return number - 1, nil
}

func (o *rootOptions) listPartitions(out io.Writer, source *imagesource.Image, img *fatinspect.Image) error {
	summary := ImageSummary{
		Image:      source.Path,
		Format:     source.Format,
		Partitions: fatinspect.SummarizePartitions(img.MBR()),
	}

	if o.cfg.CrossCheck {
		if source.Format != imagesource.Raw {
			o.log.Warnw("cross check skipped, go-diskfs needs a raw image", "format", source.Format)
		} else {
			discrepancies, err := compareDisk(source.Path, img.MBR())
			if err != nil {
				return fmt.Errorf("cross check: %w", err)
			}
			summary.Discrepancies = discrepancies
		}
	}

	if o.cfg.Format != "text" {
		return o.writeStructured(out, summary)
	}

	fatinspect.PrintPartitions(out, summary.Partitions)
	for _, d := range summary.Discrepancies {
		fmt.Fprintf(out, "discrepancy: %s\n", d)
	}
	return nil
}

func (o *rootOptions) describePartition(out io.Writer, number int, fat *fatinspect.Fs) error {
	tree, err := fat.Tree()
	if err != nil {
		return fmt.Errorf("read directory tree: %w", err)
	}

	summary := fatinspect.VolumeSummary{
		Partition:  number,
		BootSector: fat.Summary(),
		Tree:       tree,
		Warnings:   warningTexts(fat),
	}

	if o.cfg.Format != "text" {
		return o.writeStructured(out, summary)
	}

	fatinspect.PrintBootSector(out, summary.BootSector)
	fatinspect.PrintTree(out, summary.Tree)
	fatinspect.PrintWarnings(out, summary.Warnings)
	return nil
}

func (o *rootOptions) dumpFile(out, errOut io.Writer, fat *fatinspect.Fs, path string) error {
	matches, err := fat.Lookup(path)
	if err != nil {
		if errors.Is(err, fatinspect.ErrPathNotFound) {
			return fmt.Errorf("specified path does not exist: %s", path)
		}
		return err
	}

	for _, m := range matches {
		content, err := fat.ReadContent(m.Entry, o.cfg.IncludeSlack)
		if err != nil {
			return fmt.Errorf("read %s: %w", m.Path, err)
		}
		o.log.Infow("dumping file", "path", m.Path, "size", m.Entry.FileSize, "bytes", len(content))

		if o.cfg.Raw {
			if _, err := out.Write(content); err != nil {
				return err
			}
			continue
		}

		if len(matches) > 1 {
			fmt.Fprintf(out, "==> %s <==\n", m.Path)
		}
		if err := fatinspect.HexDump(out, content); err != nil {
			return err
		}
	}

	fatinspect.PrintWarnings(errOut, warningTexts(fat))
	return nil
}

func warningTexts(fat *fatinspect.Fs) []string {
	var result []string
	for _, w := range fat.Warnings() {
		result = append(result, w.Error())
	}
	return result
}

func (o *rootOptions) writeStructured(out io.Writer, v interface{}) error {
	switch o.cfg.Format {
	case "json":
		var (
			b   []byte
			err error
		)
		if o.cfg.Pretty {
			b, err = json.MarshalIndent(v, "", "  ")
		} else {
			b, err = json.Marshal(v)
		}
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil

	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, _ = fmt.Fprint(out, string(b))
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", o.cfg.Format)
	}
}
