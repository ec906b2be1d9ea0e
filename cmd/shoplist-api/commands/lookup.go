package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// LookupAction はバーコードを外部サイトで検索するコマンドのアクション。
// カタログへの書き込みは行わず、検索結果をそのまま表示する。
func LookupAction(ctx context.Context, cmd *cli.Command) error {
	barcode := cmd.String("barcode")
	envFile := cmd.String("env")

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	result, err := appCtx.Container.BarcodeSearch.Search(ctx, barcode)
	if err != nil {
		return fmt.Errorf("バーコード検索に失敗: %w", err)
	}
	if result == nil {
		fmt.Printf("バーコード %s はどのサイトでも見つかりませんでした\n", barcode)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
