// @title 试卷模版生成 API
// @version 1.0
// @description 把答案原文转换为填空模版（模版一）与评分 YAML（模版二），另提供大模型题目整理与转换历史接口。
// @description 模版生成接口无需登录；题目整理与 /conversions 历史接口属于操作员路由，
// @description 需在请求头携带 Authorization: Bearer <token>，token 由 cmd/issue-token 按 jwt.secret 签发。

// @host localhost:8080
// @BasePath /api

package main

import (
	"exam_template_backend/internal/app"
	"exam_template_backend/internal/config"
	"exam_template_backend/pkg/logger"
	"flag"
	"log"
)

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description 操作员令牌，格式为 "Bearer <token>"
func main() {
	configDir := flag.String("config", "configs", "配置文件所在目录")
	port := flag.String("port", "", "覆盖 server.port")
	migrateOnly := flag.Bool("migrate-only", false, "只迁移转换历史表，完成后退出")
	migrate := flag.Bool("migrate", false, "release 模式下也执行转换历史表迁移")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	// 迁移开关只来自命令行，不写入配置文件
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("转换历史表迁移完成")
		return
	}

	application.Run()
}
