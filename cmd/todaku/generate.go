package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/todaku-reader/todaku-api/internal/domain"
	"github.com/todaku-reader/todaku-api/internal/platform/logger"
	"github.com/todaku-reader/todaku-api/internal/platform/sqlstore"
	"github.com/todaku-reader/todaku-api/internal/service"
)

type generateOptions struct {
	waniKani int
	genki    int
	tadoku   string
	topic    string
	length   string
	format   string
	save     bool
	user     string
}

func newGenerateCommand(configFile *string) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one lesson and print it",
		Long: "Generate one lesson for the given difficulty profile. Progress goes to stderr " +
			"and the lesson to stdout; with --save it is also stored for --user.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), *configFile, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.waniKani, "wanikani", 0, "WaniKani level")
	f.IntVar(&opts.genki, "genki", 0, "Genki chapter")
	f.StringVar(&opts.tadoku, "tadoku", "0", "Tadoku level (number or label)")
	f.StringVar(&opts.topic, "topic", "", "story topic")
	f.StringVar(&opts.length, "length", string(domain.DefaultLength), "story length: short, medium or long")
	f.StringVar(&opts.format, "format", formatJSON, "output format: json or yaml")
	f.BoolVar(&opts.save, "save", false, "store the lesson in the database")
	f.StringVar(&opts.user, "user", "", "owner user ID for --save")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func (o *generateOptions) validate() (domain.DifficultyProfile, uuid.UUID, error) {
	if o.format != formatJSON && o.format != formatYAML {
		return domain.DifficultyProfile{}, uuid.Nil, fmt.Errorf("unknown format %q", o.format)
	}
	var userID uuid.UUID
	if o.save {
		id, err := uuid.Parse(o.user)
		if err != nil || id == uuid.Nil {
			return domain.DifficultyProfile{}, uuid.Nil, errors.New("--save requires --user with a valid user ID")
		}
		userID = id
	}
	profile, err := domain.NewDifficultyProfile(o.waniKani, o.genki, domain.TadokuLevel(o.tadoku), o.topic, o.length)
	if err != nil {
		return domain.DifficultyProfile{}, uuid.Nil, err
	}
	return profile, userID, nil
}

func runGenerate(ctx context.Context, configFile string, opts *generateOptions, stdout, stderr io.Writer) error {
	profile, userID, err := opts.validate()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	log, err := logger.New(stderr, cfg.Server.LogLevel, "text")
	if err != nil {
		return err
	}

	generator, err := newGenerator(ctx, cfg.LLM, log)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	if closer, ok := generator.(io.Closer); ok {
		defer closer.Close()
	}
	orchestrator, err := newOrchestrator(generator, cfg, log, newProgressPrinter(stderr).Hook)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Generation.Timeout)
	defer cancel()

	fmt.Fprintf(stderr, "Generating a %s lesson about %q...\n", profile.Length, profile.Topic)
	lesson, err := orchestrator.GenerateLesson(ctx, profile)
	if err != nil {
		return err
	}
	printWarnings(stderr, lesson.Warnings)

	if !opts.save {
		return writeLesson(stdout, lesson, opts.format)
	}

	db, err := openMigratedDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	persister, err := service.NewLessonPersister(sqlstore.NewLessonStore(db.db, db.dialect, log), log)
	if err != nil {
		return err
	}
	persisted, err := persister.Save(ctx, lesson, userID, profile)
	if err != nil {
		// The lesson is still printed so the generation is not lost.
		color.New(color.FgRed).Fprintf(stderr, "lesson could not be saved: %v\n", err)
		if writeErr := writeLesson(stdout, lesson, opts.format); writeErr != nil {
			return writeErr
		}
		return err
	}

	color.New(color.FgGreen).Fprintf(stderr, "saved lesson %s\n", persisted.ID)
	return writeLesson(stdout, persisted, opts.format)
}

