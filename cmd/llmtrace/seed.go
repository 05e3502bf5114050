package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/llmtrace/internal/app"
	"github.com/emiliopalmerini/llmtrace/internal/database"
	"github.com/emiliopalmerini/llmtrace/internal/query"
)

// seedCmd fills an empty database with plausible demo traffic so the API has
// something to show in local development.
func seedCmd() *cobra.Command {
	var sessions, messagesPerSession int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo request-log rows into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.New()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			db, err := database.New(cfg.TursoDatabaseURL, cfg.TursoAuthToken)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer db.Close()

			ctx := cmd.Context()
			if err := db.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
			n, err := seed(ctx, db, sessions, messagesPerSession)
			if err != nil {
				return err
			}
			fmt.Printf("inserted %d demo requests\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&sessions, "sessions", 20, "number of demo sessions")
	cmd.Flags().IntVar(&messagesPerSession, "messages", 5, "max messages per session")
	return cmd
}

var (
	seedModels = []struct{ model, provider string }{
		{"gpt-4o", "openai"},
		{"gpt-4o-mini", "openai"},
		{"claude-sonnet-4", "anthropic"},
	}
	seedAgents = []string{"support-bot", "research-assistant", "code-reviewer"}
	seedUsers  = []string{"alice", "bob", "carol"}
)

const insertSQL = `INSERT INTO request_logs (
	request_id, session_id, user_id, model, provider, call_type,
	start_time, end_time, completion_start_time,
	prompt_tokens, completion_tokens, total_tokens, cost,
	cache_hit, messages, response, metadata, tags
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func seed(ctx context.Context, db *database.Client, sessions, messagesPerSession int) (int, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	inserted := 0

	for s := 0; s < sessions; s++ {
		sessionID := "session-" + uuid.NewString()
		agent := seedAgents[rng.Intn(len(seedAgents))]
		user := seedUsers[rng.Intn(len(seedUsers))]
		start := time.Now().UTC().AddDate(0, 0, -rng.Intn(30))

		metadata, _ := json.Marshal(map[string]string{
			"agent_name":        agent,
			"conversation_name": fmt.Sprintf("demo-%d", s),
		})

		for m := 0; m < 1+rng.Intn(messagesPerSession); m++ {
			mp := seedModels[rng.Intn(len(seedModels))]
			prompt := int64(50 + rng.Intn(500))
			completion := int64(20 + rng.Intn(300))
			reqStart := start.Add(time.Duration(m) * time.Minute)
			reqEnd := reqStart.Add(time.Duration(500+rng.Intn(4000)) * time.Millisecond)
			firstToken := reqStart.Add(time.Duration(100+rng.Intn(400)) * time.Millisecond)

			cacheHit := "False"
			if rng.Intn(4) == 0 {
				cacheHit = "True"
			}
			response := `{"choices":[{"message":{"content":"demo reply"}}]}`
			if rng.Intn(5) == 0 {
				response = `{"choices":[{"message":{"tool_calls":[{"id":"call_1","function":{"name":"lookup"}}]}}]}`
			}

			_, err := db.ExecContext(ctx, insertSQL,
				"req-"+uuid.NewString(), sessionID, user, mp.model, mp.provider, "completion",
				query.FormatTime(reqStart), query.FormatTime(reqEnd), query.FormatTime(firstToken),
				prompt, completion, prompt+completion,
				float64(prompt+completion)*0.000002,
				cacheHit,
				`[{"role":"user","content":"demo prompt"}]`,
				response,
				string(metadata),
				`["demo"]`,
			)
			if err != nil {
				return inserted, fmt.Errorf("insert demo row: %w", err)
			}
			inserted++
		}
	}
	return inserted, nil
}
