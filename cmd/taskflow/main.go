package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nmhoang/taskflow/internal/auth"
	"github.com/nmhoang/taskflow/internal/cli"
	"github.com/nmhoang/taskflow/internal/db"
	"github.com/nmhoang/taskflow/internal/repository"
	"github.com/nmhoang/taskflow/internal/service"
	"github.com/nmhoang/taskflow/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home := func() (string, error) {
		h, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		return h, nil
	}

	// Determine DB path: env var or default ~/.taskflow/taskflow.db
	dbPath := os.Getenv("TASKFLOW_DB")
	if dbPath == "" {
		h, err := home()
		if err != nil {
			return err
		}
		dbPath = filepath.Join(h, ".taskflow", "taskflow.db")
	}

	// Uploaded files live next to the database unless overridden.
	filesDir := os.Getenv("TASKFLOW_FILES")
	if filesDir == "" {
		h, err := home()
		if err != nil {
			return err
		}
		filesDir = filepath.Join(h, ".taskflow", "files")
	}

	// Cached session token between invocations.
	sessionPath := os.Getenv("TASKFLOW_SESSION")
	if sessionPath == "" {
		h, err := home()
		if err != nil {
			return err
		}
		sessionPath = filepath.Join(h, ".taskflow", "session")
	}

	secret, err := loadSecret(filepath.Dir(dbPath))
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	files, err := storage.NewFileStore(filesDir)
	if err != nil {
		return fmt.Errorf("opening file store: %w", err)
	}

	// Wire repositories
	taskRepo := repository.NewSQLiteTaskRepo(database)
	docRepo := repository.NewSQLiteDocumentRepo(database)
	memberRepo := repository.NewSQLiteMemberRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)

	app := &cli.App{
		Tasks:       service.NewTaskService(taskRepo),
		Documents:   service.NewDocumentService(docRepo, files),
		Members:     service.NewMemberService(memberRepo, files),
		Profiles:    service.NewProfileService(profileRepo, files),
		Auth:        auth.NewService(userRepo, profileRepo, sessionRepo, secret),
		SessionPath: sessionPath,
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// loadSecret returns the token-signing secret: TASKFLOW_SECRET if set,
// otherwise a random secret generated once and kept beside the
// database so tokens stay valid across runs.
func loadSecret(dir string) ([]byte, error) {
	if s := os.Getenv("TASKFLOW_SECRET"); s != "" {
		return []byte(s), nil
	}

	path := filepath.Join(dir, "secret")
	data, err := os.ReadFile(path)
	if err == nil {
		return []byte(strings.TrimSpace(string(data))), nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading secret file: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generating secret: %w", err)
	}
	secret := hex.EncodeToString(raw)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(secret+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("writing secret file: %w", err)
	}
	return []byte(secret), nil
}
