package cmd

import (
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"quotepaper/internal/carousel"
	"quotepaper/internal/cli/cmd/utils"
	"quotepaper/internal/state"
	"quotepaper/internal/sway"
)

func NewCircleCmd() *cobra.Command {
	circleCmd := &cobra.Command{
		Use:   "circle [directory]",
		Short: "Step to another image in the wallpaper directory",
		Long: `Circle moves through the images next to the current wallpaper. The raw
image is applied immediately; the quote overlay is generated by a
detached process so this command returns right away.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			forward, _ := cmd.Flags().GetBool("forward")
			backwards, _ := cmd.Flags().GetBool("backwards")
			random, _ := cmd.Flags().GetBool("random")
			if !forward && !backwards && !random {
				log.Fatal("Please specify one of --forward, --backwards or --random")
			}

			direction := carousel.Forward
			if backwards {
				direction = carousel.Backward
			}
			if random {
				direction = carousel.Random
			}

			directory := ""
			if len(args) > 0 {
				directory = utils.CanonicalPath(args[0])
			}

			runCircle(direction, directory)
		},
	}
	circleCmd.Flags().BoolP("forward", "f", false, "Go forwards")
	circleCmd.Flags().BoolP("backwards", "b", false, "Go backwards")
	circleCmd.Flags().BoolP("random", "r", false, "Select a random image")
	circleCmd.MarkFlagsMutuallyExclusive("forward", "backwards", "random")
	return circleCmd
}

func runCircle(direction carousel.Direction, directory string) {
	fs := afero.NewOsFs()
	store := state.NewStore(fs)

	current, err := store.LoadLastInput()
	if err != nil {
		log.Fatalf("%v", err)
	}

	next, err := carousel.NewNavigator(fs).Next(current, direction, directory)
	if err != nil {
		log.Fatalf("Finding next image: %v", err)
	}
	log.Infof("Next image: %s", next)

	// Whatever generation run is still in flight is now stale; it
	// would overwrite the wallpaper we are about to set.
	lock := state.NewLock(fs, store.StatePath("generation.lock"))
	if err := lock.Preempt(); err != nil {
		log.Fatalf("Preempting previous generation: %v", err)
	}

	// Apply the raw image right away; sway's fill mode handles the
	// scaling until the overlaid version is ready.
	if err := sway.SetWallpaper(next); err != nil {
		log.Fatalf("%v", err)
	}

	if err := store.SaveLastInput(next); err != nil {
		log.Fatalf("%v", err)
	}

	// Generate the text overlay in a separate process. A goroutine
	// would die with this process; a detached child survives it.
	exe, err := os.Executable()
	if err != nil {
		log.Fatalf("Locating own executable: %v", err)
	}
	child := exec.Command(exe, "extend", "--background", next)
	child.Stdin = nil
	child.Stdout = nil
	child.Stderr = nil
	if err := child.Start(); err != nil {
		log.Fatalf("Spawning overlay generation: %v", err)
	}

	log.Info("Text overlay generation started in background")
}
