// Package main provides the CLI entrypoint for textlens.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/textlens/internal/analysis"
	"github.com/verte-zerg/textlens/internal/config"
	"github.com/verte-zerg/textlens/internal/speech"
	"github.com/verte-zerg/textlens/internal/store"
	"github.com/verte-zerg/textlens/internal/tui"
)

const (
	defaultVoiceEnabled = true
	defaultAnalyzeTop   = analysis.MaxKeywords
	defaultColumnTop    = analysis.DefaultColumnTop
)

var (
	uiVoice   bool
	uiLang    string
	uiRate    float64
	uiPitch   float64
	uiCommand string
	uiSave    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "textlens",
		Short:         "Text statistics and keyword cloud with spoken sentences",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runUICmd,
	}

	rootCmd.Flags().BoolVar(&uiVoice, "voice", defaultVoiceEnabled, "speak the sentence of the selected keyword")
	rootCmd.Flags().StringVar(&uiLang, "lang", speech.DefaultVoice.Lang, "voice language tag (BCP 47)")
	rootCmd.Flags().Float64Var(&uiRate, "rate", speech.DefaultVoice.Rate, "voice rate multiplier (0-10]")
	rootCmd.Flags().Float64Var(&uiPitch, "pitch", speech.DefaultVoice.Pitch, "voice pitch multiplier [0-2]")
	rootCmd.Flags().StringVar(&uiCommand, "speech-command", speech.DefaultCommand, "text-to-speech command template")
	rootCmd.Flags().BoolVar(&uiSave, "save", false, "save every analysis to history")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newColumnsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runUICmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "voice", &uiVoice, fileCfg.Voice.Enabled)
	applyStringConfig(cmd, "lang", &uiLang, fileCfg.Voice.Lang)
	applyFloatConfig(cmd, "rate", &uiRate, fileCfg.Voice.Rate)
	applyFloatConfig(cmd, "pitch", &uiPitch, fileCfg.Voice.Pitch)
	applyStringConfig(cmd, "speech-command", &uiCommand, fileCfg.Voice.Command)
	applyBoolConfig(cmd, "save", &uiSave, fileCfg.Analyze.Save)

	voice := speech.Voice{Lang: uiLang, Rate: uiRate, Pitch: uiPitch}
	controller, err := newVoiceController(voice, uiCommand, uiVoice)
	if err != nil {
		return err
	}

	opts := tui.Options{Voice: controller, Save: uiSave}
	if uiSave {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		opts.Store = st
	}

	model := tui.NewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := program.Run()
	if err := controller.Deselect(); err != nil {
		logErrf("%v\n", err)
	}
	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	return nil
}

// newVoiceController validates the voice and builds a controller around the
// speech command. A missing speech program disables voice with a notice.
func newVoiceController(voice speech.Voice, command string, enabled bool) (*speech.Controller, error) {
	if err := voice.Validate(); err != nil {
		return nil, err
	}
	sp, err := speech.NewCommandSpeaker(command, voice)
	if err != nil {
		return nil, fmt.Errorf("invalid speech command: %w", err)
	}
	program, _ := sp.Args("")
	if _, err := exec.LookPath(program); err != nil {
		if enabled {
			logErrf("speech program %q not found; voice disabled\n", program)
		}
		return speech.NewController(speech.Nop{}, false), nil
	}
	return speech.NewController(sp, enabled), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the config file from the template unless it
// already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# textlens configuration
# Uncomment a value to enable it. CLI flags override config values.

[analyze]
# top = %d                # Keywords printed by "textlens analyze" (0 = all)
# save = false            # Save every analysis to history

[voice]
# enabled = %t            # Speak the sentence of the selected keyword
# lang = %q          # BCP 47 language tag
# rate = %.1f              # Rate multiplier (0-10]
# pitch = %.1f             # Pitch multiplier [0-2]
# command = %q
#   Placeholders: {lang} {base} {rate} {wpm} {pitch} {pitch99}; the sentence is appended.
`,
		defaultAnalyzeTop,
		defaultVoiceEnabled,
		speech.DefaultVoice.Lang,
		speech.DefaultVoice.Rate,
		speech.DefaultVoice.Pitch,
		speech.DefaultCommand,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
