package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shouni/gemini-tryon-kit/internal/config"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// cfg はサブコマンドの実行前にルートコマンドが読み込むのだ。
var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tryon",
	Short: "Gemini の画像編集によるバーチャル試着",
	Long: `tryon は Gemini の画像モデルを使って人物画像に衣服画像を着せ、
編集後の画像を保存します。

例:
  tryon edit --person me.jpg --garment kurta.png
  tryon edit --person me.jpg --garment gs://catalog/kurta.png --opacity 0.8 --lighting brighter
  tryon prompt --lighting dimmer`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(promptCmd)

	rootCmd.PersistentFlags().String("env-file", ".env", "環境変数を読む前に読み込む .env ファイル (存在しなければ無視)")
}

func setup(cmd *cobra.Command, _ []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s の読み込みに失敗しました: %w", envFile, err)
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
