package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"snapid/internal/textutil"
	"snapid/internal/visualid"
)

const summaryRounding = 10 * time.Millisecond

func newIndexCommand(ctx *commandContext) *cobra.Command {
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the poster embedding index",
	}

	indexCmd.AddCommand(newIndexBuildCommand(ctx))
	indexCmd.AddCommand(newIndexListCommand(ctx))
	indexCmd.AddCommand(newIndexInfoCommand(ctx))

	return indexCmd
}

func newIndexBuildCommand(ctx *commandContext) *cobra.Command {
	var titlesPerType int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the embedding index from the configured streaming catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			metadataSvc, err := buildMetadataService(cfg, logger)
			if err != nil {
				return err
			}
			embedClient, err := buildEmbedder(cfg)
			if err != nil {
				return fmt.Errorf("create embedder client: %w", err)
			}
			store, err := visualid.OpenStore(cfg.IndexPath())
			if err != nil {
				return fmt.Errorf("open index store: %w", err)
			}
			defer store.Close()

			perType := cfg.Index.TitlesPerType
			if titlesPerType > 0 {
				perType = titlesPerType
			}

			builder := visualid.NewBuilder(metadataSvc, embedClient, store, perType, logger)
			summary, err := builder.Build(runCtx)
			if err != nil {
				return fmt.Errorf("build index: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Index build finished in %s\n", summary.Elapsed.Round(summaryRounding))
			fmt.Fprintf(out, "  processed: %d\n", summary.Processed)
			fmt.Fprintf(out, "  stored:    %d\n", summary.Stored)
			fmt.Fprintf(out, "  skipped:   %d\n", summary.Skipped)
			fmt.Fprintf(out, "  failed:    %d\n", summary.Failed)
			return nil
		},
	}

	cmd.Flags().IntVar(&titlesPerType, "titles-per-type", 0, "Override how many titles per media type to index")
	return cmd
}

func newIndexListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entries in the embedding index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := visualid.OpenStore(cfg.IndexPath())
			if err != nil {
				return fmt.Errorf("open index store: %w", err)
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list index entries: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "Index is empty; run `snapid index build` to populate it.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					record.MediaID,
					record.MediaType,
					textutil.Truncate(record.Title, 48),
					strconv.Itoa(len(record.Vector)),
					record.CreatedAt.Format("2006-01-02"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Media ID", "Type", "Title", "Dims", "Indexed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newIndexInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show embedding index summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := visualid.OpenStore(cfg.IndexPath())
			if err != nil {
				return fmt.Errorf("open index store: %w", err)
			}
			defer store.Close()

			index, err := store.LoadIndex(cmd.Context())
			if err != nil {
				return fmt.Errorf("load index: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:       %s\n", store.Path())
			fmt.Fprintf(out, "Entries:    %d\n", index.Len())
			fmt.Fprintf(out, "Dimensions: %d\n", index.Dimensions())
			if index.Len() == 0 {
				fmt.Fprintln(out, "Index is empty; the visual route will refuse requests until it is built.")
			}
			return nil
		},
	}
}
