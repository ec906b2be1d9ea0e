package commands

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/urfave/cli/v3"

	apihttp "github.com/jinford/shoplist-api/internal/interface/http"
)

// ServeAction はAPIサーバを起動するコマンドのアクション
func ServeAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	logger := appCtx.Logger()

	handler := apihttp.NewHandler(appCtx.Container, logger)
	server := apihttp.NewServer(appCtx.Config.HTTP.ListenAddr, handler)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("APIサーバを起動します", "addr", appCtx.Config.HTTP.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("APIサーバの起動に失敗: %w", err)
	case <-ctx.Done():
	}

	logger.Info("シャットダウンします")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("シャットダウンに失敗: %w", err)
	}
	return nil
}
