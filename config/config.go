package config

import (
	"fmt"
	"os"

	"github.com/lib/pq"
	"github.com/rheannec/planora/internal/models"
	"github.com/xendit/xendit-go/v6"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type XenditConfig struct {
	SecretKey     string
	CallbackToken string
}

func LoadXenditConfig() (*XenditConfig, error) {
	return &XenditConfig{
		SecretKey:     os.Getenv("XENDIT_SECRET_KEY"),
		CallbackToken: os.Getenv("XENDIT_CALLBACK_TOKEN"),
	}, nil
}

func InitXenditClient(config *XenditConfig) (*xendit.APIClient, error) {
	client := xendit.NewClient(config.SecretKey)

	return client, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.PredefinedTemplate{},
		&models.Event{},
		&models.Participant{},
		&models.Gift{},
		&models.Contribution{},
		&models.KeyValue{},
	)
	if err != nil {
		return nil, err
	}

	seedTemplates(db)

	return db, nil
}

func strPtr(s string) *string {
	return &s
}

func seedTemplates(db *gorm.DB) {
	templates := []models.PredefinedTemplate{
		{
			Name:             "anniversaire",
			Type:             models.EventTypeIndividual,
			Icon:             "🎂",
			Emojis:           pq.StringArray{"🎂", "🎉", "🎈", "🎁"},
			InvitationPolicy: "Seul l'hôte peut inviter des participants.",
		},
		{
			Name:                 "noël",
			Type:                 models.EventTypeCollective,
			Icon:                 "🎄",
			Emojis:               pq.StringArray{"🎄", "🎅", "⛄", "🎁"},
			DefaultRecurringDate: strPtr("12-25"),
			InvitationPolicy:     "Tous les participants peuvent inviter.",
		},
		{
			Name:                 "saint-valentin",
			Type:                 models.EventTypeIndividual,
			Icon:                 "❤️",
			Emojis:               pq.StringArray{"❤️", "🌹", "💝"},
			DefaultRecurringDate: strPtr("02-14"),
			InvitationPolicy:     "Seul l'hôte peut inviter des participants.",
		},
		{
			Name:             "mariage",
			Type:             models.EventTypeSpecial,
			Icon:             "💍",
			Emojis:           pq.StringArray{"💍", "👰", "🤵", "🥂"},
			InvitationPolicy: "Les organisateurs peuvent inviter.",
		},
		{
			Name:             "baby shower",
			Type:             models.EventTypeCollective,
			Icon:             "🍼",
			Emojis:           pq.StringArray{"🍼", "👶", "🧸"},
			InvitationPolicy: "Tous les participants peuvent inviter.",
		},
		{
			Name:             "crémaillère",
			Type:             models.EventTypeCollective,
			Icon:             "🏡",
			Emojis:           pq.StringArray{"🏡", "🔑", "🥳"},
			InvitationPolicy: "Tous les participants peuvent inviter.",
		},
	}

	for _, template := range templates {
		var existing models.PredefinedTemplate
		result := db.Where("name = ?", template.Name).First(&existing)
		if result.Error != nil {
			db.Create(&template)
		}
	}
}
