package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sdkview/internal/render"
	"github.com/ziadkadry99/sdkview/internal/source"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the games available in the configured dump source",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		src, err := newSource(cfg)
		if err != nil {
			return err
		}

		games, err := src.ListGames(ctx)
		if errors.Is(err, source.ErrNoGames) {
			fmt.Println("No games found.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("listing games: %w", err)
		}

		updated, err := src.LastUpdated(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not fetch last update: %v\n", err)
		}

		for _, g := range games {
			marker := " "
			if g.Name == cfg.Game || g.Display == cfg.Game {
				marker = "*"
			}
			fmt.Printf("%s %s %s\n", marker, render.GameIcon(g.Display), g.Display)
		}
		fmt.Printf("\nSDK updated: %s\n", render.FormatUpdated(updated, time.Now()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gamesCmd)
}
