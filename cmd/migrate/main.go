package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   差分マイグレーションを適用
  status      適用済み / 未適用のマイグレーションを表示
  reset       全テーブルを DROP し、集約スキーマで再作成
  fresh       全テーブルを DROP し、全マイグレーションを順番に適用`)
	os.Exit(1)
}

func main() {
	logging.Setup()

	cfg, err := config.Load(".env", "../.env")
	if err != nil {
		logging.Fatal("failed to load config", "error", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	dir := findMigrationDir()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		err = runIncremental(ctx, pool, dir)
	case "status":
		err = printStatus(ctx, pool, dir)
	case "reset":
		if err = runFile(ctx, pool, dir, "000_drop_all.sql"); err == nil {
			err = runConsolidated(ctx, pool, dir)
		}
	case "fresh":
		if err = runFile(ctx, pool, dir, "000_drop_all.sql"); err == nil {
			err = runIncremental(ctx, pool, dir)
		}
	default:
		usage()
	}
	if err != nil {
		logging.Fatal("migrate failed", "command", cmd, "error", err)
	}
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

// migrationNames は .up.sql ファイルのマイグレーション名をソート済みで返す
func migrationNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, strings.TrimSuffix(e.Name(), ".up.sql"))
		}
	}
	sort.Strings(names)
	return names, nil
}

func appliedSet(ctx context.Context, pool *pgxpool.Pool) (map[string]bool, error) {
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}
	rows, err := pool.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func runIncremental(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	names, err := migrationNames(dir)
	if err != nil {
		return err
	}
	applied, err := appliedSet(ctx, pool)
	if err != nil {
		return err
	}

	count := 0
	for _, name := range names {
		if applied[name] {
			continue
		}
		if err := runFile(ctx, pool, dir, name+".up.sql"); err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		count++
		slog.Info("migration completed", "migration", name)
	}

	if count == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", count)
	}
	return nil
}

func printStatus(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	names, err := migrationNames(dir)
	if err != nil {
		return err
	}
	applied, err := appliedSet(ctx, pool)
	if err != nil {
		return err
	}
	for _, name := range names {
		state := "pending"
		if applied[name] {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, name)
	}
	return nil
}

func runFile(ctx context.Context, pool *pgxpool.Pool, dir, filename string) error {
	sql, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply %s: %w", filename, err)
	}
	return nil
}

// runConsolidated は集約スキーマを適用し、全マイグレーションを適用済みとして記録する
func runConsolidated(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	if err := runFile(ctx, pool, dir, "000_consolidated.sql"); err != nil {
		return err
	}
	names, err := migrationNames(dir)
	if err != nil {
		return err
	}
	if _, err := appliedSet(ctx, pool); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := pool.Exec(ctx,
			"INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(names))
	return nil
}
