// 签发运维令牌，用于调用需要鉴权的接口
//
// 用法: go run ./cmd/issue-token -subject ops -ttl 72h
package main

import (
	"exam_template_backend/internal/config"
	"exam_template_backend/internal/util"
	"flag"
	"fmt"
	"log"
	"time"
)

func main() {
	subject := flag.String("subject", "operator", "令牌持有者名称")
	ttl := flag.Duration("ttl", 0, "有效期，默认使用配置中的 jwt.expire_hours")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	expiration := *ttl
	if expiration <= 0 {
		expiration = cfg.JWT.ExpireTime
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}

	token, err := util.GenerateJWT(*subject, cfg.JWT.Secret, expiration)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
