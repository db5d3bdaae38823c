package main

import (
	"os"

	"github.com/kalakriti-next/internal/config"
	"github.com/kalakriti-next/internal/logger"
	"github.com/kalakriti-next/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 演示账号
	if err := models.InitDemoUser(os.Getenv("KK_DEMO_USER_EMAIL"), os.Getenv("KK_DEMO_USER_PASSWORD")); err != nil {
		stdLog.Printf("Failed to init demo user: %v", err)
	}

	// 艺术品目录
	artworks := []models.Artwork{
		{
			Slug:        "madhubani-peacock",
			Title:       "Madhubani Peacock",
			ArtistName:  "Sita Devi",
			Description: "Traditional Madhubani painting of a peacock in natural dyes.",
			Category:    "folk",
			PriceAmount: models.NewMoneyFromFloat(2000),
			Images:      models.StringArray{"/images/madhubani-peacock.jpg"},
			Sizes:       models.StringArray{"small", "medium", "large"},
			Formats:     models.StringArray{"canvas", "paper", "framed"},
			IsActive:    true,
			SortOrder:   100,
		},
		{
			Slug:        "tanjore-krishna",
			Title:       "Tanjore Krishna",
			ArtistName:  "R. Muthu",
			Description: "Gold-leaf Tanjore painting of Krishna with gemstone inlay.",
			Category:    "classical",
			PriceAmount: models.NewMoneyFromFloat(7500),
			Images:      models.StringArray{"/images/tanjore-krishna.jpg"},
			Sizes:       models.StringArray{"medium", "large"},
			Formats:     models.StringArray{"framed"},
			IsActive:    true,
			SortOrder:   90,
		},
		{
			Slug:        "warli-harvest",
			Title:       "Warli Harvest Dance",
			ArtistName:  "Jivya Mashe",
			Description: "Warli tribal art depicting the harvest dance in white on ochre.",
			Category:    "tribal",
			PriceAmount: models.NewMoneyFromFloat(1500),
			Images:      models.StringArray{"/images/warli-harvest.jpg"},
			Sizes:       models.StringArray{"small", "medium"},
			Formats:     models.StringArray{"canvas", "paper"},
			IsActive:    true,
			SortOrder:   80,
		},
		{
			Slug:        "pattachitra-jagannath",
			Title:       "Pattachitra Jagannath",
			ArtistName:  "Ananta Maharana",
			Description: "Odisha Pattachitra scroll of Lord Jagannath on palm leaf.",
			Category:    "folk",
			PriceAmount: models.NewMoneyFromFloat(3200),
			Images:      models.StringArray{"/images/pattachitra-jagannath.jpg"},
			Sizes:       models.StringArray{"small", "medium", "large"},
			Formats:     models.StringArray{"paper", "framed"},
			IsActive:    true,
			SortOrder:   70,
		},
		{
			Slug:        "kerala-mural-theyyam",
			Title:       "Kerala Mural Theyyam",
			ArtistName:  "K. Sreekumar",
			Description: "Vivid Kerala mural of a Theyyam performer in mineral pigments.",
			Category:    "classical",
			PriceAmount: models.NewMoneyFromFloat(5600),
			Images:      models.StringArray{"/images/kerala-mural-theyyam.jpg"},
			Sizes:       models.StringArray{"large"},
			Formats:     models.StringArray{"canvas", "framed"},
			IsActive:    true,
			SortOrder:   60,
		},
	}

	for _, art := range artworks {
		var existing models.Artwork
		if err := models.DB.Where("slug = ?", art.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&art).Error; err != nil {
				stdLog.Printf("Failed to create artwork %s: %v", art.Slug, err)
			} else {
				stdLog.Printf("Created artwork: %s", art.Slug)
			}
		} else {
			stdLog.Printf("Artwork already exists: %s", art.Slug)
		}
	}

	stdLog.Printf("Seed finished")
}
