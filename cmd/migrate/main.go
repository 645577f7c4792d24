package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"community-portal/config"
	"community-portal/pkg/database"
	applogger "community-portal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config.yaml）")
	direction := flag.String("direction", "up", "迁移方向: up | down")
	steps := flag.Int("steps", 1, "回滚步数（仅 down 生效）")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}

	switch *direction {
	case "up":
		err = database.RunMigrations(sqlDB, logger)
	case "down":
		if *steps < 1 {
			logger.Fatal("steps 必须为正整数", zap.Int("steps", *steps))
		}
		err = database.Rollback(sqlDB, *steps, logger)
	default:
		logger.Fatal("未知的迁移方向", zap.String("direction", *direction))
	}
	if err != nil {
		logger.Fatal("迁移执行失败", zap.String("direction", *direction), zap.Error(err))
	}
	logger.Info("迁移执行完成", zap.String("direction", *direction))
}
