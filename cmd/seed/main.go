package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/qbankhq/qbank-backend/internal/config"
	"github.com/qbankhq/qbank-backend/internal/database"
	"github.com/qbankhq/qbank-backend/internal/logger"
	"github.com/qbankhq/qbank-backend/internal/model"
	"github.com/qbankhq/qbank-backend/internal/repository"
)

// Seeds the reference catalogs with the baseline entries every deployment
// starts from. Safe to run repeatedly: existing entries are left alone.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	refRepo := repository.NewReferenceRepository(pool)

	fmt.Println("=== Seeding Reference Catalogs ===")

	subjects := []string{"Maths", "Chemistry", "Physics"}
	for _, name := range subjects {
		if _, err := refRepo.SubjectByName(ctx, name); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			log.Fatal().Err(err).Str("subject", name).Msg("Failed to check subject")
		}
		if err := refRepo.CreateSubject(ctx, &model.Subject{Name: name}); err != nil {
			log.Fatal().Err(err).Str("subject", name).Msg("Failed to create subject")
		}
		fmt.Printf("Created subject: %s\n", name)
	}

	exams := []string{"Boards", "Jee Mains", "Jee Advanced", "Neet"}
	for _, name := range exams {
		if _, err := refRepo.ExamByName(ctx, name); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			log.Fatal().Err(err).Str("exam", name).Msg("Failed to check exam")
		}
		if err := refRepo.CreateExam(ctx, &model.Exam{Name: name}); err != nil {
			log.Fatal().Err(err).Str("exam", name).Msg("Failed to create exam")
		}
		fmt.Printf("Created exam: %s\n", name)
	}

	types := []string{"multiple-choice", "short-answer", "long-answer"}
	for _, name := range types {
		if _, err := refRepo.QuestionTypeByName(ctx, name); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			log.Fatal().Err(err).Str("type", name).Msg("Failed to check question type")
		}
		if err := refRepo.CreateQuestionType(ctx, &model.QuestionTypeRef{Name: name}); err != nil {
			log.Fatal().Err(err).Str("type", name).Msg("Failed to create question type")
		}
		fmt.Printf("Created question type: %s\n", name)
	}

	existing, err := refRepo.ListDifficulties(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list difficulties")
	}
	levels := map[string]bool{}
	for _, d := range existing {
		levels[d.Level] = true
	}
	for _, level := range []string{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		if levels[level] {
			continue
		}
		if err := refRepo.CreateDifficulty(ctx, &model.Difficulty{Level: level}); err != nil {
			log.Fatal().Err(err).Str("level", level).Msg("Failed to create difficulty")
		}
		fmt.Printf("Created difficulty: %s\n", level)
	}

	fmt.Println("\nSeed completed.")
}
