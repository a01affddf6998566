// 手动补传模版二归档
//
// 开启 parser.archive 之前生成的双模版记录没有归档文件，
// 此脚本按创建时间顺序逐批上传到当前配置的存储。
//
// 用法: go run scripts/backfill_artifacts.go [-batch 100]

package main

import (
	"context"
	"exam_template_backend/internal/config"
	"exam_template_backend/internal/repository"
	"exam_template_backend/internal/service"
	"exam_template_backend/pkg/database"
	"exam_template_backend/pkg/logger"
	"flag"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig 脚本只关心数据库与存储两段
type fileConfig struct {
	Server struct {
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		Charset  string `yaml:"charset"`
	} `yaml:"database"`
	Storage struct {
		Type           string `yaml:"type"`
		LocalPath      string `yaml:"local_path"`
		MinioEndpoint  string `yaml:"minio_endpoint"`
		MinioAccessKey string `yaml:"minio_access_key"`
		MinioSecretKey string `yaml:"minio_secret_key"`
		MinioBucket    string `yaml:"minio_bucket"`
		OSSEndpoint    string `yaml:"oss_endpoint"`
		OSSAccessKey   string `yaml:"oss_access_key"`
		OSSSecretKey   string `yaml:"oss_secret_key"`
		OSSBucket      string `yaml:"oss_bucket"`
	} `yaml:"storage"`
}

func (f fileConfig) toConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = f.Server.Mode
	cfg.Database = config.DatabaseConfig{
		Host:      f.Database.Host,
		Port:      f.Database.Port,
		User:      f.Database.User,
		Password:  f.Database.Password,
		DBName:    f.Database.DBName,
		Charset:   f.Database.Charset,
		ParseTime: true,
	}
	if cfg.Database.Charset == "" {
		cfg.Database.Charset = "utf8mb4"
	}
	cfg.Storage = config.StorageConfig{
		Type:          f.Storage.Type,
		LocalPath:     f.Storage.LocalPath,
		MinioEndpoint: f.Storage.MinioEndpoint,
		MinioAccessID: f.Storage.MinioAccessKey,
		MinioSecret:   f.Storage.MinioSecretKey,
		MinioBucket:   f.Storage.MinioBucket,
		OSSEndpoint:   f.Storage.OSSEndpoint,
		OSSAccessKey:  f.Storage.OSSAccessKey,
		OSSSecretKey:  f.Storage.OSSSecretKey,
		OSSBucket:     f.Storage.OSSBucket,
	}
	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "./uploads"
	}
	cfg.Parser.Archive = true
	return cfg
}

func main() {
	batch := flag.Int("batch", 100, "每批处理的记录数")
	flag.Parse()

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}
	cfg := fc.toConfig()

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	repo := repository.NewConversionRepository(db)
	templates := service.NewTemplateService(cfg.Parser, repo, nil, service.NewStorageService(cfg))

	ctx := context.Background()
	total := 0
	for {
		records, err := repo.FindUnarchived(ctx, *batch)
		if err != nil {
			log.Fatalf("查询记录失败: %v", err)
		}
		if len(records) == 0 {
			break
		}

		for i := range records {
			templates.Archive(ctx, &records[i])
			total++
		}
		log.Printf("已处理 %d 条记录", total)

		// 上传失败的记录仍会被查出，避免死循环
		if remaining, err := repo.FindUnarchived(ctx, 1); err == nil && len(remaining) > 0 && remaining[0].ID == records[0].ID {
			log.Println("部分记录归档失败，请检查存储配置后重试")
			break
		}
	}

	log.Printf("✅ 补传完成，共处理 %d 条记录", total)
}
