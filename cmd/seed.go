package cmd

import (
	"context"
	"fmt"
	"os"

	"school-timetable/internal/infrastructure/database"
	"school-timetable/internal/infrastructure/repository"
	"school-timetable/internal/service"
	"school-timetable/pkg/logger"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed default data",
	Long: `Populate an empty store with the default teacher roster and the
default grade-section configurations. Running against an already
populated store is a no-op.`,
	Run: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	db := connectForCommand()

	if err := database.RunMigrations(db); err != nil {
		logger.Error("Failed to run database migrations: %v", err)
		os.Exit(1)
	}

	seedService := service.NewSeedService(
		repository.NewTeacherRepository(db),
		repository.NewGradeSectionRepository(db),
	)

	if err := seedService.Run(context.Background()); err != nil {
		logger.Error("Seeding failed: %v", err)
		os.Exit(1)
	}

	fmt.Println("Seeding completed successfully!")
}
