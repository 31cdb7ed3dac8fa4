package cli

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate/internal/playback"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay [state] [moves]",
	Short: "Step through a solution in the terminal",
	Long: `Replay a solution move by move on a colored net of the cube.

Without moves the cube's latest recorded solve is used, or a search is run.

Usage:
  cubestate replay <state> "U R U' R'"   # Replay given moves
  cubestate replay --id <cube-id>        # Replay the latest solve of a cube
  cubestate replay <state> --speed fast  # Auto-play quickly
  cubestate replay <state> --play        # Start playing immediately

Keys:
  space   - Play/pause
  →/n     - Next move
  ←/p     - Previous move
  r/e     - Jump to start/end
  +/-     - Change speed
  q/Esc   - Quit`,
	Args: cobra.MaximumNArgs(2),
	RunE: runReplay,
}

var (
	replayID    string
	replaySpeed string
	replayPlay  bool
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVar(&replayID, "id", "", "Replay a saved cube")
	replayCmd.Flags().StringVarP(&replaySpeed, "speed", "s", "", "Playback speed: slow, medium, fast (default: last used)")
	replayCmd.Flags().BoolVar(&replayPlay, "play", false, "Start auto-play immediately")
}

func runReplay(cmd *cobra.Command, args []string) error {
	session, title, err := loadSession(cmd.Context(), replayID, args)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	settings := storage.NewSettingsRepository(db)

	speed, err := replayStartSpeed(settings)
	if err != nil {
		return err
	}
	autoPlay, err := replayAutoPlay(settings)
	if err != nil {
		return err
	}

	model := newReplayModel(session, title, speed, autoPlay, newNetRenderer(cfg.Palette))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}

	if model.speedChanged {
		if err := settings.Set(storage.SettingPlaybackSpeed, model.speed.String()); err != nil {
			return err
		}
		logger.Debug("playback speed saved", "speed", model.speed)
	}
	return nil
}

// replayStartSpeed prefers --speed, then the last used speed, then config.
func replayStartSpeed(settings *storage.SettingsRepository) (playback.Speed, error) {
	if replaySpeed != "" {
		return playback.ParseSpeed(replaySpeed)
	}
	saved, ok, err := settings.Get(storage.SettingPlaybackSpeed)
	if err != nil {
		return 0, err
	}
	if ok {
		if speed, err := playback.ParseSpeed(saved); err == nil {
			return speed, nil
		}
		logger.Warn("ignoring stored playback speed", "value", saved)
	}
	return cfg.PlaybackSpeed(), nil
}

func replayAutoPlay(settings *storage.SettingsRepository) (bool, error) {
	if replayPlay {
		return true, nil
	}
	saved, ok, err := settings.Get(storage.SettingPlaybackAutoPlay)
	if err != nil {
		return false, err
	}
	if ok {
		if v, err := strconv.ParseBool(saved); err == nil {
			return v, nil
		}
	}
	return cfg.Playback.AutoPlay, nil
}
