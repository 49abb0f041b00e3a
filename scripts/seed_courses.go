// 手动导入演示课程数据脚本
//
// 新环境首次部署后执行一次，写入示例课程供前端联调使用。
// 已存在同名课程时跳过，可重复执行。
//
// 用法: go run scripts/seed_courses.go

package main

import (
	"aivra_backend/internal/config"
	"aivra_backend/internal/model"
	"aivra_backend/pkg/database"
	"aivra_backend/pkg/logger"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	courses := []model.Course{
		{
			Title:       "Go 语言入门",
			Description: "从零开始的 Go 基础课程",
			Duration:    model.Duration{Value: 6, Unit: "weeks"},
			Domain:      "Programming",
			Level:       "Beginner",
			Status:      model.CoursePublished,
			Modules: []model.Module{
				{
					ID:    model.GenerateUUID(),
					Title: "基础语法",
					Chapters: []model.Chapter{
						{ID: model.GenerateUUID(), Title: "变量与类型"},
						{ID: model.GenerateUUID(), Title: "流程控制"},
					},
				},
				{
					ID:    model.GenerateUUID(),
					Title: "并发编程",
					Chapters: []model.Chapter{
						{ID: model.GenerateUUID(), Title: "Goroutine"},
						{ID: model.GenerateUUID(), Title: "Channel"},
					},
				},
			},
		},
		{
			Title:       "分布式系统设计",
			Description: "一致性、复制与分区实践",
			Duration:    model.Duration{Value: 8, Unit: "weeks"},
			Domain:      "Systems",
			Level:       "Intermediate",
			Status:      model.CoursePublished,
			Modules: []model.Module{
				{
					ID:    model.GenerateUUID(),
					Title: "基础概念",
					Chapters: []model.Chapter{
						{ID: model.GenerateUUID(), Title: "CAP 与一致性模型"},
					},
				},
			},
		},
	}

	for _, course := range courses {
		var count int64
		db.Model(&model.Course{}).Where("title = ?", course.Title).Count(&count)
		if count > 0 {
			log.Printf("课程已存在，跳过: %s", course.Title)
			continue
		}
		if err := db.Create(&course).Error; err != nil {
			log.Fatalf("写入课程失败: %v", err)
		}
		log.Printf("已导入课程: %s (%s)", course.Title, course.ID)
	}

	log.Println("演示数据导入完成")
}
