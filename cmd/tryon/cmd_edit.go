package main

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"
	"github.com/shouni/gemini-tryon-kit/internal/config"
	"github.com/shouni/gemini-tryon-kit/pkg/generator"
	"github.com/shouni/gemini-tryon-kit/pkg/retry"
	"github.com/shouni/gemini-tryon-kit/pkg/source"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "人物画像に衣服を着せた画像を生成して保存します",
	Long: `人物画像と衣服画像 (ローカルパス、data: URL、http(s)://、gs://) を読み込み、
Gemini に合成を依頼して結果を --out に書き出します。

レート制限に当たった場合は指数バックオフで再試行します。
HTTP 429 のまま再試行を使い切った場合は API の利用上限に達したことを表示します。`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("person", "", "人物画像 (パス、data: URL、http(s)://、gs://)")
	editCmd.Flags().String("garment", "", "衣服画像 (パス、data: URL、http(s)://、gs://)")
	editCmd.Flags().StringP("out", "o", "tryon-result", "出力ファイル。拡張子を省略すると画像形式から補います")
	editCmd.Flags().Int("jpeg-quality", 0, "送信前に入力画像をこの品質 (1-100) の JPEG に再圧縮します。0 なら再圧縮しません")
	_ = editCmd.MarkFlagRequired("person")
	_ = editCmd.MarkFlagRequired("garment")
	addAdjustmentFlags(editCmd)
}

func runEdit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	personRef, _ := cmd.Flags().GetString("person")
	garmentRef, _ := cmd.Flags().GetString("garment")
	out, _ := cmd.Flags().GetString("out")
	quality, _ := cmd.Flags().GetInt("jpeg-quality")

	adj, err := adjustmentsFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	svc, err := newTryOnService(ctx, cfg)
	if err != nil {
		return err
	}

	loader, closeLoader, err := newLoader(ctx, cfg, quality, personRef, garmentRef)
	if err != nil {
		return err
	}
	defer closeLoader()

	person, err := loader.Load(ctx, personRef)
	if err != nil {
		return fmt.Errorf("人物画像: %w", err)
	}
	garment, err := loader.Load(ctx, garmentRef)
	if err != nil {
		return fmt.Errorf("衣服画像: %w", err)
	}

	result, err := svc.PerformEdit(ctx, person, garment, adj)
	if err != nil {
		return err
	}

	path, err := source.WriteDataURL(out, result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

func newTryOnService(ctx context.Context, c *config.Config) (*generator.TryOnService, error) {
	seed := c.Seed
	return generator.NewTryOnServiceFromOptions(ctx, generator.Options{
		APIKey: c.APIKey,
		Generator: generator.GeneratorConfig{
			Model:   c.Model,
			Seed:    &seed,
			Timeout: c.RequestTimeout,
		},
		Retry: retry.Policy{
			MaxAttempts: c.MaxAttempts,
			BaseDelay:   c.BaseDelay,
		},
	})
}

// newLoader は gs:// の参照があるときだけ GCS クライアントを作るのだ。
func newLoader(ctx context.Context, c *config.Config, quality int, refs ...string) (*source.Loader, func(), error) {
	var (
		gcsClient *storage.Client
		cleanup   = func() {}
	)

	if anyGCS(refs) {
		var opts []option.ClientOption
		if c.GCSCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(c.GCSCredentialsFile))
		}
		client, err := storage.NewClient(ctx, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("GCSクライアントの作成に失敗しました: %w", err)
		}
		gcsClient = client
		cleanup = func() {
			if err := client.Close(); err != nil {
				slog.WarnContext(ctx, "GCSクライアントのクローズに失敗しました", "error", err)
			}
		}
	}

	loader, err := source.NewLoader(
		httpkit.New(c.FetchTimeout),
		remoteio.NewUniversalInputReader(gcsClient, nil),
		source.LoaderOptions{MaxBytes: c.MaxImageBytes, JPEGQuality: quality},
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return loader, cleanup, nil
}

func anyGCS(refs []string) bool {
	for _, r := range refs {
		if source.IsGCS(r) {
			return true
		}
	}
	return false
}
