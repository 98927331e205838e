package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"papergen"
)

func main() {
	var (
		topic      = flag.String("topic", "", "Topic to generate questions on (empty: whole-syllabus mode)")
		sourceFile = flag.String("source", "", "Path to a source material file to base questions on")
		count      = flag.Int("count", 10, "Number of questions to generate")
		pattern    = flag.String("pattern", "random", "Question pattern, or 'random' for weighted distribution")
		cognitive  = flag.String("cognitive", "random", "Cognitive level, or 'random' for weighted distribution")
		difficulty = flag.String("difficulty", "random", "Difficulty level, or 'random' for weighted distribution")
		batchKey   = flag.String("batch", "", "Batch key for the run (default: derived from timestamp)")
		start      = flag.Int("start", 0, "Starting question number (default: continue after the batch's highest)")
		dbPath     = flag.String("db", "questions.db", "Path to the question archive database")
		noArchive  = flag.Bool("no-archive", false, "Skip the archive entirely; print questions only")
		outputFile = flag.String("output", "", "Output file for question JSON (default: stdout)")
		apiKey     = flag.String("api-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
		bulk       = flag.Bool("bulk", false, "Bulk mode: pause between chunks for long unattended runs")
		verbose    = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	// .env is optional; environment variables win when both are set.
	godotenv.Load()

	papergen.SetVerbose(*verbose)

	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
		if *apiKey == "" {
			log.Fatal("OpenAI API key is required. Use -api-key flag or set OPENAI_API_KEY environment variable.")
		}
	}

	sourceMaterial := ""
	if *sourceFile != "" {
		data, err := os.ReadFile(*sourceFile)
		if err != nil {
			log.Fatalf("Failed to read source material: %v", err)
		}
		sourceMaterial = string(data)
	}

	var archive *papergen.Archivist
	if !*noArchive {
		var err error
		archive, err = papergen.OpenArchive(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer archive.Close()
		if err := archive.CreateTables(); err != nil {
			log.Fatalf("Failed to initialize archive: %v", err)
		}
	}

	if *batchKey == "" {
		*batchKey = time.Now().Format("batch-20060102-150405")
	}

	startNumber := *start
	if startNumber == 0 {
		startNumber = 1
		if archive != nil {
			max, err := archive.MaxQuestionNumber(*batchKey)
			if err != nil {
				log.Fatalf("Failed to read batch state: %v", err)
			}
			startNumber = max + 1
		}
	}

	rows := []papergen.RequirementRow{{
		Topic:               *topic,
		Pattern:             *pattern,
		Cognitive:           *cognitive,
		Difficulty:          *difficulty,
		Count:               *count,
		RandomizeTopic:      *topic == "",
		RandomizePattern:    *pattern == "random",
		RandomizeCognitive:  *cognitive == "random",
		RandomizeDifficulty: *difficulty == "random",
	}}

	req := papergen.PlanRequest{
		Requirements: papergen.ExpandRequirements(rows),
		Context:      sourceMaterial,
		Topic:        *topic,
	}

	if *verbose {
		log.Printf("Batch %s: %d requirements, starting at question %d", *batchKey, len(req.Requirements), startNumber)
	}

	manager := papergen.NewManager(*apiKey, archive)
	manager.BulkMode = *bulk

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	questions, err := manager.GenerateQuestions(ctx, req, *batchKey, startNumber)
	if err != nil {
		log.Fatalf("Failed to generate questions: %v", err)
	}

	totals := manager.Usage().Totals()
	log.Printf("Generated %d questions (%d tokens across %d LLM calls)",
		len(questions), totals.TotalTokens, manager.Usage().Calls())

	paper := papergen.TestPaper{Questions: questions}
	data, err := json.MarshalIndent(paper, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal questions: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, data, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Questions written to %s", *outputFile)
	} else {
		fmt.Println(string(data))
	}
}
