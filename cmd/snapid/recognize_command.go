package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"snapid/internal/recognition"
)

func newRecognizeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "recognize <screenshot>",
		Short: "Identify the title shown in a screenshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg, "stderr")
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read screenshot: %w", err)
			}

			runCtx := context.Background()
			engine, store, err := buildEngine(runCtx, cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := engine.Recognize(runCtx, image)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			printResult(out, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	return cmd
}

func printResult(out io.Writer, result recognition.Result) {
	colorize := shouldColorize(out)

	if !result.Matched() {
		fmt.Fprintln(out, renderStatusLine("Result", statusWarn, "no confident match", colorize))
		if result.ExtractedText != "" {
			fmt.Fprintln(out, renderStatusLine("Extracted text", statusInfo, result.ExtractedText, colorize))
		}
		return
	}

	fmt.Fprintln(out, renderStatusLine("Title", statusOK, result.Title.Title, colorize))
	fmt.Fprintln(out, renderStatusLine("Media", statusInfo, fmt.Sprintf("%s (%s)", result.Title.MediaID, result.Title.MediaType), colorize))
	if result.Title.ReleaseDate != "" {
		fmt.Fprintln(out, renderStatusLine("Released", statusInfo, result.Title.ReleaseDate, colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Method", statusInfo, string(result.Method), colorize))
	fmt.Fprintln(out, renderStatusLine("Confidence", statusInfo, fmt.Sprintf("%.2f", result.Confidence), colorize))
	if result.Method == recognition.MethodVisual {
		fmt.Fprintln(out, renderStatusLine("Similarity", statusInfo, fmt.Sprintf("%.3f", result.Similarity), colorize))
	}
	if result.ExtractedText != "" {
		fmt.Fprintln(out, renderStatusLine("Extracted text", statusInfo, result.ExtractedText, colorize))
	}
}
