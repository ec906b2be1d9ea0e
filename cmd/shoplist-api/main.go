package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jinford/shoplist-api/cmd/shoplist-api/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 構造化ログの設定
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	envFlag := &cli.StringFlag{
		Name:  "env",
		Usage: "環境変数ファイルパス",
		Value: ".env",
	}

	app := &cli.Command{
		Name:  "shoplist-api",
		Usage: "バーコード解決付きショッピングリストAPI",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "APIサーバを起動",
				Flags:  []cli.Flag{envFlag},
				Action: commands.ServeAction,
			},
			{
				Name:  "lookup",
				Usage: "バーコードを外部サイトで検索して結果を表示（カタログへの書き込みなし）",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{
						Name:     "barcode",
						Usage:    "検索するバーコード",
						Required: true,
					},
				},
				Action: commands.LookupAction,
			},
			{
				Name:   "migrate",
				Usage:  "データベーススキーマを適用",
				Flags:  []cli.Flag{envFlag},
				Action: commands.MigrateAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
