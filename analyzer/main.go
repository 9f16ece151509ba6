package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paipu/analyzer/app"
	"paipu/common/config"
	"paipu/common/log"
	"paipu/common/metrics"
	"paipu/runtime/replay/codec"
	"paipu/runtime/replay/engines/mahjong"
)

var (
	configFile string
	logLevel   string
	logFile    string
	pretty     bool
)

var rootCmd = &cobra.Command{
	Use:   "paipu",
	Short: "麻将牌谱回放与统计",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 接口和 nats 回放队列",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("文件配置发生错误：%w", err)
		}
		level := conf.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		log.InitLog(conf.AppName, level)
		if logLevel == "" {
			config.OnChange(func(next *config.Config) {
				log.SetLevel(next.Log.Level)
			})
		}

		monitor, err := metrics.NewServer(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort))
		if err != nil {
			return err
		}
		go func() {
			log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
			if err := monitor.Serve(); err != nil {
				log.Error("监控服务异常: %v", err)
			}
		}()
		defer monitor.Shutdown(context.Background())

		return app.Run(cmd.Context(), conf)
	},
}

// replayCmd 离线回放单个牌谱文件，结果以 JSON 输出到 stdout
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "离线回放一个 JSON 牌谱文件",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.InitLog("paipu", logLevel)
		log.SetOutput(os.Stderr)

		data, err := os.ReadFile(logFile)
		if err != nil {
			return err
		}
		gameLog, err := codec.Decode(data, mahjong.DefaultPlayerCount)
		if err != nil {
			return err
		}
		replay, err := mahjong.ReplayEvents(gameLog.Events, mahjong.WithPlayerCount(gameLog.PlayerCount))
		if err != nil {
			return err
		}
		result := mahjong.AssembleGameResult(gameLog.Meta, replay, gameLog.PlayerCount)

		enc := json.NewEncoder(cmd.OutOrStdout())
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "logLevel", "", "log level: debug/info/warn/error")

	serveCmd.Flags().StringVar(&configFile, "configFile", "", "config file (yaml)")

	replayCmd.Flags().StringVar(&logFile, "file", "", "game log json file")
	replayCmd.Flags().BoolVar(&pretty, "pretty", false, "indent output")
	_ = replayCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(serveCmd, replayCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error("error happen: %v", err)
		os.Exit(1)
	}
}
