package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"keieiplan/internal/config"
	"keieiplan/internal/server"
	"keieiplan/internal/util"
)

var (
	port    = flag.Int("port", 0, "サーバーポート (config.toml が優先。port 未設定時のみ有効)")
	devMode = flag.Bool("dev", false, "開発モード")
	dataDir = flag.String("dataDir", "", "データディレクトリ (設定ファイルを上書き)")
	noOpen  = flag.Bool("no-open", false, "起動時にブラウザを開かない")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  keieiplan - 経営計画スタジオ")
	fmt.Println("==========================================")

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// 設定を読み込む
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Warn().Err(err).Msg("設定の読み込みに失敗、既定値で起動します")
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 初回起動時は既定値で config.toml を作っておく
	if !info.ConfigExists {
		if err := config.SaveConfig(cfg); err != nil {
			log.Warn().Err(err).Msg("config.toml の作成に失敗")
		} else {
			log.Info().Msg("config.toml を既定値で作成しました")
		}
	}

	// コマンドライン引数で上書き
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	// データディレクトリを確保
	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("データディレクトリの作成に失敗")
	} else {
		fmt.Printf("データディレクトリ: %s\n", dir)
	}

	// ポートが塞がっていれば近くの空きポートへ退避
	listenPort := util.FindAvailablePort(cfg.Server.Port)
	if listenPort != cfg.Server.Port {
		log.Warn().Int("configured", cfg.Server.Port).Int("actual", listenPort).Msg("ポートが使用中のため変更しました")
		cfg.Server.Port = listenPort
	}

	srv := server.NewServer(cfg, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("サーバー起動中、ポート %d で待機します...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("サーバーの起動に失敗")
		}
	}()

	// ブラウザを開く
	if !cfg.Server.DevMode && !*noOpen {
		fmt.Printf("ブラウザを開いています: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("ブラウザを自動起動できません。手動でアクセスしてください: %s\n", url)
		}
	} else {
		fmt.Printf("アクセス先: %s\n", url)
	}

	fmt.Println("\nCtrl+C で停止します...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nサーバーを停止します...")
}
