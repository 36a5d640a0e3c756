package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sevlyar/go-daemon"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"quotepaper/internal/cli/cmd/utils"
	"quotepaper/internal/generator"
	"quotepaper/internal/ipc"
	"quotepaper/internal/quotes"
	"quotepaper/internal/state"
)

func NewExtendCmd() *cobra.Command {
	extendCmd := &cobra.Command{
		Use:   "extend [input]",
		Short: "Overlay a quote onto an image and set it as wallpaper",
		Long: `Extend composites a random configured quote (plus the optional balance
readout) onto the given image and applies the result as the wallpaper.
Without an argument the most recently used input image is reused.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			background, _ := cmd.Flags().GetBool("background")
			if background {
				cntxt := &daemon.Context{}
				child, err := cntxt.Reborn()
				if err != nil {
					log.Fatalf("Unable to detach: %v", err)
				}
				if child != nil {
					// Parent: the detached child carries on alone.
					return
				}
				defer cntxt.Release()
				setupRotatingLogger()
			}

			input := ""
			if len(args) > 0 {
				input = utils.CanonicalPath(args[0])
			}
			RunExtend(input)
		},
	}
	extendCmd.Flags().BoolP("background", "b", false, "Detach and generate in the background")
	return extendCmd
}

// RunExtend performs one locked generation run. Exported for the
// circle command, which chains into it.
func RunExtend(input string) {
	fs := afero.NewOsFs()
	store := state.NewStore(fs)
	lock := state.NewLock(fs, store.StatePath("generation.lock"))

	if err := lock.Acquire(); err != nil {
		log.Fatalf("Acquiring generation lock: %v", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Errorf("Releasing generation lock: %v", err)
		}
	}()

	if input == "" {
		cached, err := store.LoadLastInput()
		if err != nil {
			log.Fatalf("%v", err)
		}
		input = cached
	}

	pool, err := decodeQuotes()
	if err != nil {
		log.Fatalf("Reading quotes from config: %v", err)
	}

	tracker := ipc.NewTracker(input)
	go ipc.Start(tracker)
	defer ipc.Shutdown()

	opts := generator.Options{
		Input:    input,
		Quotes:   pool,
		Padding:  viper.GetInt("text_padding"),
		FontPath: utils.CanonicalPath(viper.GetString("font")),
		Store:    store,
		Tracker:  tracker,
	}
	if viper.IsSet("balance.command") {
		opts.Balance = &quotes.Balance{
			Command: viper.GetString("balance.command"),
			Label:   viper.GetString("balance.label"),
		}
	}

	if err := generator.Run(opts); err != nil {
		log.Fatalf("Wallpaper generation failed: %v", err)
	}
}

func decodeQuotes() ([]quotes.Quote, error) {
	raw, _ := viper.Get("quotes").([]any)
	return quotes.Decode(raw)
}

func setupRotatingLogger() {
	home := os.Getenv("HOME")
	logDir := filepath.Join(home, ".local", "share", "quotepaper")
	logPath := filepath.Join(logDir, "quotepaper.log")

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	log.SetLevel(log.InfoLevel)
}
