package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// MigrateAction はデータベーススキーマを適用するコマンドのアクション
func MigrateAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	if err := appCtx.Container.Database().ApplySchema(ctx); err != nil {
		return fmt.Errorf("スキーマ適用に失敗: %w", err)
	}

	appCtx.Logger().Info("スキーマを適用しました")
	return nil
}
