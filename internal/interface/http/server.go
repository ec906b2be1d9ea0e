package http

import (
	"net/http"
	"time"
)

// NewServer はAPIサーバを作成します
func NewServer(addr string, handler *Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		// 外部サイトのスクレイピングを含むリクエストがあるため長めに取る
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
