package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"

	"github.com/verte-zerg/textlens/internal/analysis"
	"github.com/verte-zerg/textlens/internal/config"
	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/report"
	"github.com/verte-zerg/textlens/internal/store"
	"github.com/verte-zerg/textlens/internal/textio"
)

const stdinSource = "stdin"

var (
	analyzeTop        int
	analyzeSave       bool
	analyzeNoKeywords bool
	analyzeColor      bool
	analyzeEncoding   string
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Print statistics and keywords of a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().IntVar(&analyzeTop, "top", defaultAnalyzeTop, "number of keywords to print (0 = all)")
	cmd.Flags().BoolVar(&analyzeSave, "save", false, "save the analysis to history")
	cmd.Flags().BoolVar(&analyzeNoKeywords, "no-keywords", false, "print statistics only")
	cmd.Flags().BoolVar(&analyzeColor, "color", false, "force colored keyword bars")
	cmd.Flags().StringVar(&analyzeEncoding, "encoding", "auto", "input encoding (auto, utf-8, utf-16, latin1, windows-1252, ...)")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "top", &analyzeTop, fileCfg.Analyze.Top)
	applyBoolConfig(cmd, "save", &analyzeSave, fileCfg.Analyze.Save)

	cfg := model.AnalyzeConfig{Top: analyzeTop, Save: analyzeSave, NoKeywords: analyzeNoKeywords}
	if cfg.Top < 0 {
		return fmt.Errorf("--top must be >= 0")
	}

	enc, err := textio.Lookup(analyzeEncoding)
	if err != nil {
		return err
	}
	text, source, err := readInput(cmd.InOrStdin(), args, enc)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	result, ok := analysis.Analyze(text)
	if !ok {
		if _, err := fmt.Fprintln(out, "Nothing to analyze: input is blank."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := report.RenderStatistics(out, result.Statistics); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !cfg.NoKeywords {
		useColor := report.ShouldUseColor(out, analyzeColor)
		if err := report.RenderKeywords(out, result.Keywords, cfg.Top, useColor); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if cfg.Save {
		return saveAnalysis(cmd.Context(), source, result)
	}
	return nil
}

// readInput returns the decoded text of the named file, or stdin when no file
// or "-" is given, along with the source label stored in history.
func readInput(stdin io.Reader, args []string, enc encoding.Encoding) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		text, err := textio.ReadAll(stdin, enc)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return text, stdinSource, nil
	}
	file, err := os.Open(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	text, err := textio.ReadAll(file, enc)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return text, args[0], nil
}

func saveAnalysis(ctx context.Context, source string, result analysis.Result) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	id, err := st.InsertAnalysis(ctx, time.Now(), source, result.Statistics, result.Keywords)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	logErrf("Saved analysis #%d\n", id)
	return nil
}
