package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/saludmental/mindtrack/internal/config"
	"github.com/saludmental/mindtrack/internal/repository"
	"github.com/saludmental/mindtrack/internal/service"
	"github.com/saludmental/mindtrack/pkg/database"
	"github.com/saludmental/mindtrack/pkg/logger"
	"github.com/saludmental/mindtrack/pkg/metrics"
)

func main() {
	var (
		filePath = flag.String("file", "", "path to the xlsx workbook to import")
		yes      = flag.Bool("yes", false, "skip the confirmation prompt")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file workbook.xlsx [-yes]")
		os.Exit(2)
	}

	if _, err := os.Stat(*filePath); err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", *filePath, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	m := metrics.NewCollector("mindtrack_import")
	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), m, log)
	defer auditSvc.Shutdown()

	repos := repository.NewImportRepos(db)
	statsSvc := service.NewStatsService(repos.Patients, repos.Disorders, repos.Attempts, repos.Consumptions, repos.Followups)
	importSvc := service.NewImportService(db, cfg.Import, auditSvc, m, log)

	ctx := context.Background()

	before, err := statsSvc.Snapshot(ctx)
	if err != nil {
		log.Fatal("failed to read registry counts", zap.Error(err))
	}

	fmt.Printf("Workbook: %s\n", *filePath)
	fmt.Printf("Sheets:   %q, %q, %q (follow-up year %d)\n\n",
		cfg.Import.DisordersSheet.Name,
		cfg.Import.AttemptsSheet.Name,
		cfg.Import.ConsumptionsSheet.Name,
		cfg.Import.FollowupYear,
	)
	printSnapshot("Registry before import", before)

	if !*yes && !confirm() {
		fmt.Println("aborted")
		return
	}

	stats, err := importSvc.ImportWorkbookFile(ctx, *filePath, cfg.Import.SystemOperatorID)
	if err != nil {
		log.Fatal("import failed, no changes were applied", zap.Error(err))
	}

	fmt.Println("\nImport result")
	fmt.Printf("  patients created:   %d\n", stats.Imported)
	fmt.Printf("  patients updated:   %d\n", stats.Updated)
	fmt.Printf("  rows skipped:       %d\n", stats.Skipped)
	fmt.Printf("  cases created:      %d\n", stats.CasesCreated)
	fmt.Printf("  follow-ups created: %d\n", stats.FollowupsCreated)
	fmt.Printf("  errors:             %d\n", stats.TotalErrors)
	for _, e := range stats.Errors {
		fmt.Printf("    - %s\n", e)
	}
	if stats.Truncated() {
		fmt.Printf("    (%d more errors not shown)\n", stats.TotalErrors-len(stats.Errors))
	}

	after, err := statsSvc.Snapshot(ctx)
	if err != nil {
		log.Fatal("failed to read registry counts", zap.Error(err))
	}
	fmt.Println()
	printSnapshot("Registry after import", after)
}

func printSnapshot(title string, s *service.RegistrySnapshot) {
	fmt.Println(title)
	fmt.Printf("  patients:               %d\n", s.Patients)
	fmt.Printf("  mental disorders:       %d\n", s.Disorders)
	fmt.Printf("  suicide attempts:       %d\n", s.Attempts)
	fmt.Printf("  substance consumptions: %d\n", s.Consumptions)
	fmt.Printf("  monthly follow-ups:     %d\n", s.Followups)
}

func confirm() bool {
	fmt.Print("\nProceed with the import? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
